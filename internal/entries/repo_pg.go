package entries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"journal-backend/internal/sentiment"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new entry.
func (r *PGRepo) Create(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO journal_entries (
	id, user_id, journal_text, sentiment_label,
	score_positive, score_neutral, score_negative,
	athena_response, response_tier, used_fallback, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.JournalText,
		string(entry.Sentiment.Label),
		entry.Sentiment.Scores.Positive,
		entry.Sentiment.Scores.Neutral,
		entry.Sentiment.Scores.Negative,
		entry.AthenaResponse,
		entry.Tier,
		entry.UsedFallback,
		entry.CreatedAt,
	)
	return err
}

// GetByID returns the entry if it exists and belongs to the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, entryID string) (Entry, error) {
	const query = `
SELECT id, user_id, journal_text, sentiment_label,
       score_positive, score_neutral, score_negative,
       athena_response, response_tier, used_fallback, created_at
FROM journal_entries
WHERE id = $1 AND user_id = $2
LIMIT 1`

	entry, err := scanEntry(r.DB.QueryRowContext(ctx, query, entryID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return entry, nil
}

// ListByUser returns a user's entries newest-first with limit/offset.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, user_id, journal_text, sentiment_label,
       score_positive, score_neutral, score_negative,
       athena_response, response_tier, used_fallback, created_at
FROM journal_entries
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// ListByUserSince returns all of a user's entries created at or after the
// cutoff, oldest-first. Analytics aggregations consume this ordering directly.
func (r *PGRepo) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]Entry, error) {
	const query = `
SELECT id, user_id, journal_text, sentiment_label,
       score_positive, score_neutral, score_negative,
       athena_response, response_tier, used_fallback, created_at
FROM journal_entries
WHERE user_id = $1 AND created_at >= $2
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// Delete removes the entry if it exists and belongs to the user.
func (r *PGRepo) Delete(ctx context.Context, userID, entryID string) error {
	const query = `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var label string
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.JournalText,
		&label,
		&e.Sentiment.Scores.Positive,
		&e.Sentiment.Scores.Neutral,
		&e.Sentiment.Scores.Negative,
		&e.AthenaResponse,
		&e.Tier,
		&e.UsedFallback,
		&e.CreatedAt,
	); err != nil {
		return Entry{}, err
	}
	e.Sentiment.Label = sentiment.Label(label)
	return e, nil
}

var _ Repo = (*PGRepo)(nil)
