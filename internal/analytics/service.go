package analytics

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"

	"journal-backend/internal/entries"
	"journal-backend/internal/sentiment"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
	defaultWordLimit  = 25
	maxWordLimit      = 100
	minWordLength     = 4
)

// EntrySource is the slice of entry storage the analytics service reads.
type EntrySource interface {
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]entries.Entry, error)
}

// Service computes aggregations over a user's journal history.
type Service struct {
	Entries EntrySource
	// now is swapped in tests to pin the window edges.
	now func() time.Time
}

// NewService constructs a Service.
func NewService(source EntrySource) *Service {
	return &Service{Entries: source, now: time.Now}
}

// TimelinePoint is one day's aggregated mood.
type TimelinePoint struct {
	Date       string           `json:"date"`
	Label      sentiment.Label  `json:"sentiment"`
	Scores     sentiment.Scores `json:"averageScores"`
	EntryCount int              `json:"entryCount"`
}

// MoodTimeline returns one point per day that has entries, oldest-first,
// over the trailing window. A day's label is the dominant bucket of its
// averaged scores.
func (s *Service) MoodTimeline(ctx context.Context, userID string, days int) ([]TimelinePoint, error) {
	days = clampDays(days)
	since := s.now().UTC().AddDate(0, 0, -days)

	items, err := s.Entries.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		scores sentiment.Scores
		count  int
	}
	byDay := make(map[string]*bucket)
	for _, e := range items {
		day := e.CreatedAt.UTC().Format("2006-01-02")
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.scores.Positive += e.Sentiment.Scores.Positive
		b.scores.Neutral += e.Sentiment.Scores.Neutral
		b.scores.Negative += e.Sentiment.Scores.Negative
		b.count++
	}

	points := make([]TimelinePoint, 0, len(byDay))
	for day, b := range byDay {
		avg := sentiment.Scores{
			Positive: b.scores.Positive / float64(b.count),
			Neutral:  b.scores.Neutral / float64(b.count),
			Negative: b.scores.Negative / float64(b.count),
		}
		points = append(points, TimelinePoint{
			Date:       day,
			Label:      dominant(avg),
			Scores:     avg,
			EntryCount: b.count,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points, nil
}

// WordCount is one word-cloud item.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordCloud returns the most frequent meaningful words across the user's
// entries in the trailing window. Stopwords and words shorter than four
// letters are dropped; ties break alphabetically so the output is stable.
func (s *Service) WordCloud(ctx context.Context, userID string, days, limit int) ([]WordCount, error) {
	days = clampDays(days)
	if limit <= 0 {
		limit = defaultWordLimit
	}
	if limit > maxWordLimit {
		limit = maxWordLimit
	}
	since := s.now().UTC().AddDate(0, 0, -days)

	items, err := s.Entries.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, e := range items {
		for _, word := range tokenize(e.JournalText) {
			counts[word]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Streak summarizes journaling consistency.
type Streak struct {
	Current    int    `json:"currentStreak"`
	Longest    int    `json:"longestStreak"`
	TotalDays  int    `json:"totalDays"`
	LastActive string `json:"lastActiveDate,omitempty"`
}

// Streaks computes the current and longest runs of consecutive journaling
// days over the past year. The current streak survives a submission gap of
// one day so that "haven't written yet today" does not zero it out.
func (s *Service) Streaks(ctx context.Context, userID string) (Streak, error) {
	since := s.now().UTC().AddDate(0, 0, -maxWindowDays)

	items, err := s.Entries.ListByUserSince(ctx, userID, since)
	if err != nil {
		return Streak{}, err
	}
	if len(items) == 0 {
		return Streak{}, nil
	}

	seen := make(map[string]bool)
	var days []time.Time
	for _, e := range items {
		day := e.CreatedAt.UTC().Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := days[len(days)-1]
	today := s.now().UTC().Truncate(24 * time.Hour)
	current := 0
	if gap := today.Sub(last); gap <= 24*time.Hour {
		current = run
	}

	return Streak{
		Current:    current,
		Longest:    longest,
		TotalDays:  len(days),
		LastActive: last.Format("2006-01-02"),
	}, nil
}

func clampDays(days int) int {
	if days <= 0 {
		return defaultWindowDays
	}
	if days > maxWindowDays {
		return maxWindowDays
	}
	return days
}

// dominant mirrors the pipeline's label rule: strict majorities win, ties
// stay neutral.
func dominant(s sentiment.Scores) sentiment.Label {
	switch {
	case s.Positive > s.Negative && s.Positive > s.Neutral:
		return sentiment.LabelPositive
	case s.Negative > s.Positive && s.Negative > s.Neutral:
		return sentiment.LabelNegative
	default:
		return sentiment.LabelNeutral
	}
}

var stopwords = map[string]bool{
	"about": true, "after": true, "again": true, "been": true, "before": true,
	"being": true, "could": true, "doing": true, "down": true, "each": true,
	"from": true, "have": true, "having": true, "here": true, "into": true,
	"just": true, "like": true, "more": true, "most": true, "only": true,
	"other": true, "over": true, "really": true, "some": true, "such": true,
	"than": true, "that": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "today": true,
	"very": true, "want": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "will": true, "with": true,
	"would": true, "your": true,
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if len(f) < minWordLength || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}
