package entries

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores entries in memory and is safe for concurrent use. It
// backs local development when no database is configured.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Entry
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Entry),
		byUser: make(map[string][]string),
	}
}

// Create stores the entry.
func (r *MemoryRepo) Create(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[entry.ID] = entry
	r.byUser[entry.UserID] = append(r.byUser[entry.UserID], entry.ID)
	return nil
}

// GetByID returns the entry if it exists and belongs to the user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, entryID string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.byID[entryID]
	if !ok || entry.UserID != userID {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

// ListByUser returns a user's entries newest-first with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ids := r.byUser[userID]
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		if entry, ok := r.byID[id]; ok {
			out = append(out, entry)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Entry{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// ListByUserSince returns all of a user's entries created at or after the
// cutoff, oldest-first.
func (r *MemoryRepo) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	ids := r.byUser[userID]
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		if entry, ok := r.byID[id]; ok && !entry.CreatedAt.Before(since) {
			out = append(out, entry)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes the entry if it exists and belongs to the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, entryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.byID[entryID]
	if !ok || entry.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, entryID)
	ids := r.byUser[userID]
	for i, id := range ids {
		if id == entryID {
			r.byUser[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
