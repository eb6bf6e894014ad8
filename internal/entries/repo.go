package entries

import "context"

// Repo defines persistence operations for journal entries. Every lookup is
// scoped to a user; crossing user boundaries is ErrNotFound, never a leak.
type Repo interface {
	Create(ctx context.Context, entry Entry) error
	GetByID(ctx context.Context, userID, entryID string) (Entry, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error)
	Delete(ctx context.Context, userID, entryID string) error
}
