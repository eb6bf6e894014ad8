package analytics

import (
	"context"
	"testing"
	"time"

	"journal-backend/internal/entries"
	"journal-backend/internal/sentiment"
)

type stubSource struct {
	items []entries.Entry
}

func (s stubSource) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]entries.Entry, error) {
	var out []entries.Entry
	for _, e := range s.items {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func entryAt(day time.Time, label sentiment.Label, scores sentiment.Scores, text string) entries.Entry {
	return entries.Entry{
		UserID:      "user-1",
		JournalText: text,
		Sentiment:   sentiment.Result{Label: label, Scores: scores},
		CreatedAt:   day,
	}
}

func newTestService(items []entries.Entry) *Service {
	svc := NewService(stubSource{items: items})
	svc.now = fixedNow
	return svc
}

func TestMoodTimelineAveragesPerDay(t *testing.T) {
	day := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	svc := newTestService([]entries.Entry{
		entryAt(day, sentiment.LabelPositive, sentiment.Scores{Positive: 0.9, Neutral: 0.1, Negative: 0}, "great"),
		entryAt(day.Add(4*time.Hour), sentiment.LabelNegative, sentiment.Scores{Positive: 0.1, Neutral: 0.1, Negative: 0.8}, "bad"),
		entryAt(day.AddDate(0, 0, 1), sentiment.LabelPositive, sentiment.Scores{Positive: 1, Neutral: 0, Negative: 0}, "best"),
	})

	points, err := svc.MoodTimeline(context.Background(), "user-1", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	first := points[0]
	if first.Date != "2025-06-10" {
		t.Fatalf("expected oldest day first, got %s", first.Date)
	}
	if first.EntryCount != 2 {
		t.Fatalf("expected 2 entries on first day, got %d", first.EntryCount)
	}
	if first.Scores.Positive != 0.5 {
		t.Fatalf("expected averaged positive 0.5, got %v", first.Scores.Positive)
	}
	// 0.5 positive vs 0.4 negative: positive strictly dominates.
	if first.Label != sentiment.LabelPositive {
		t.Fatalf("expected positive day label, got %s", first.Label)
	}
}

func TestMoodTimelineRespectsWindow(t *testing.T) {
	svc := newTestService([]entries.Entry{
		entryAt(fixedNow().AddDate(0, 0, -40), sentiment.LabelNeutral, sentiment.Scores{Neutral: 1}, "old"),
		entryAt(fixedNow().AddDate(0, 0, -5), sentiment.LabelNeutral, sentiment.Scores{Neutral: 1}, "recent"),
	})

	points, err := svc.MoodTimeline(context.Background(), "user-1", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected only the in-window day, got %d points", len(points))
	}
}

func TestWordCloudFiltersAndRanks(t *testing.T) {
	day := fixedNow().AddDate(0, 0, -1)
	svc := newTestService([]entries.Entry{
		entryAt(day, sentiment.LabelNeutral, sentiment.Scores{Neutral: 1},
			"The interview went well. Interview prep was worth it, and the cat sat."),
		entryAt(day, sentiment.LabelNeutral, sentiment.Scores{Neutral: 1},
			"Another interview tomorrow."),
	})

	words, err := svc.WordCloud(context.Background(), "user-1", 30, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) == 0 {
		t.Fatalf("expected words")
	}
	if words[0].Word != "interview" || words[0].Count != 3 {
		t.Fatalf("expected interview x3 first, got %+v", words[0])
	}
	for _, w := range words {
		if len(w.Word) < 4 {
			t.Fatalf("short word leaked into cloud: %q", w.Word)
		}
		if stopwords[w.Word] {
			t.Fatalf("stopword leaked into cloud: %q", w.Word)
		}
	}
	if len(words) > 5 {
		t.Fatalf("expected at most 5 words, got %d", len(words))
	}
}

func TestStreaksCountsConsecutiveDays(t *testing.T) {
	var items []entries.Entry
	// 3-day run ending yesterday, plus an isolated day a week earlier.
	for i := 1; i <= 3; i++ {
		items = append(items, entryAt(fixedNow().AddDate(0, 0, -i), sentiment.LabelNeutral, sentiment.Scores{Neutral: 1}, "entry"))
	}
	items = append(items, entryAt(fixedNow().AddDate(0, 0, -10), sentiment.LabelNeutral, sentiment.Scores{Neutral: 1}, "entry"))

	svc := newTestService(items)
	streak, err := svc.Streaks(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if streak.Current != 3 {
		t.Fatalf("expected current streak 3, got %d", streak.Current)
	}
	if streak.Longest != 3 {
		t.Fatalf("expected longest streak 3, got %d", streak.Longest)
	}
	if streak.TotalDays != 4 {
		t.Fatalf("expected 4 active days, got %d", streak.TotalDays)
	}
}

func TestStreaksZeroCurrentAfterGap(t *testing.T) {
	svc := newTestService([]entries.Entry{
		entryAt(fixedNow().AddDate(0, 0, -3), sentiment.LabelNeutral, sentiment.Scores{Neutral: 1}, "entry"),
	})
	streak, err := svc.Streaks(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if streak.Current != 0 {
		t.Fatalf("expected broken current streak, got %d", streak.Current)
	}
	if streak.Longest != 1 {
		t.Fatalf("expected longest 1, got %d", streak.Longest)
	}
}

func TestStreaksEmptyHistory(t *testing.T) {
	svc := newTestService(nil)
	streak, err := svc.Streaks(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if streak.Current != 0 || streak.Longest != 0 || streak.TotalDays != 0 {
		t.Fatalf("expected zero streaks, got %+v", streak)
	}
}
