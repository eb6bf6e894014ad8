package entries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"journal-backend/internal/sentiment"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	entry := Entry{
		ID:          "entry-1",
		UserID:      "user-1",
		JournalText: "a good day",
		Sentiment: sentiment.Result{
			Label:  sentiment.LabelPositive,
			Scores: sentiment.Scores{Positive: 0.8, Neutral: 0.1, Negative: 0.1},
		},
		AthenaResponse: "Well done.",
		Tier:           "generative",
		UsedFallback:   false,
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO journal_entries").
		WithArgs(
			entry.ID,
			entry.UserID,
			entry.JournalText,
			"positive",
			0.8,
			0.1,
			0.1,
			entry.AthenaResponse,
			entry.Tier,
			entry.UsedFallback,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), entry); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansSentiment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "journal_text", "sentiment_label",
		"score_positive", "score_neutral", "score_negative",
		"athena_response", "response_tier", "used_fallback", "created_at",
	}).AddRow("entry-1", "user-1", "a good day", "positive", 0.8, 0.1, 0.1, "Well done.", "generative", false, time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM journal_entries").
		WithArgs("entry-1", "user-1").
		WillReturnRows(rows)

	entry, err := repo.GetByID(context.Background(), "user-1", "entry-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if entry.Sentiment.Label != sentiment.LabelPositive {
		t.Fatalf("expected positive label, got %s", entry.Sentiment.Label)
	}
	if entry.Sentiment.Scores.Positive != 0.8 {
		t.Fatalf("expected positive score 0.8, got %v", entry.Sentiment.Scores.Positive)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("DELETE FROM journal_entries").
		WithArgs("entry-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "user-1", "entry-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
