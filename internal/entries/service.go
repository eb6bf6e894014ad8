package entries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"journal-backend/internal/pipeline"
	"journal-backend/internal/sentiment"
	"journal-backend/internal/shared/telemetry"
	"journal-backend/internal/transcription"
)

// Runner is the slice of the pipeline the service depends on.
type Runner interface {
	Run(ctx context.Context, text string) (pipeline.Result, error)
	RunWithSentiment(ctx context.Context, text string, result sentiment.Result) (pipeline.Result, error)
}

// Service contains business logic for journal entries.
type Service struct {
	Repo        Repo
	Pipeline    Runner
	Transcriber transcription.Adapter
}

// Create runs the text pipeline on a submission and persists the outcome.
func (s *Service) Create(ctx context.Context, userID, journalText string) (Entry, error) {
	result, err := s.Pipeline.Run(ctx, journalText)
	if err != nil {
		return Entry{}, err
	}
	return s.persist(ctx, userID, journalText, result)
}

// CreateFromVoice transcribes the audio and runs the pipeline on the
// transcript. When the transcription provider tags utterance sentiment, that
// becomes the entry's sentiment and the primary analyzer is skipped.
func (s *Service) CreateFromVoice(ctx context.Context, userID string, audio []byte, mimeType string) (Entry, string, error) {
	if s.Transcriber == nil {
		return Entry{}, "", ErrTranscriptionUnavailable
	}
	transcript, err := s.Transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return Entry{}, "", err
	}

	var result pipeline.Result
	if len(transcript.Utterances) > 0 {
		normalized := sentiment.Normalize(sentiment.Payload{
			Kind:       sentiment.KindUtterances,
			Utterances: transcript.Utterances,
		})
		result, err = s.Pipeline.RunWithSentiment(ctx, transcript.Text, normalized)
	} else {
		result, err = s.Pipeline.Run(ctx, transcript.Text)
	}
	if err != nil {
		return Entry{}, "", err
	}

	entry, err := s.persist(ctx, userID, transcript.Text, result)
	if err != nil {
		return Entry{}, "", err
	}
	return entry, transcript.Text, nil
}

// Transcribe converts audio to text without creating an entry.
func (s *Service) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if s.Transcriber == nil {
		return "", ErrTranscriptionUnavailable
	}
	transcript, err := s.Transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return "", err
	}
	return transcript.Text, nil
}

// Get returns one of the user's entries.
func (s *Service) Get(ctx context.Context, userID, entryID string) (Entry, error) {
	return s.Repo.GetByID(ctx, userID, entryID)
}

// List returns the user's entries newest-first. Limit defaults to 10 and is
// capped at 100.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes one of the user's entries.
func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	return s.Repo.Delete(ctx, userID, entryID)
}

func (s *Service) persist(ctx context.Context, userID, journalText string, result pipeline.Result) (Entry, error) {
	entry := Entry{
		ID:             uuid.NewString(),
		UserID:         userID,
		JournalText:    journalText,
		Sentiment:      result.Sentiment,
		AthenaResponse: result.Response,
		Tier:           string(result.Tier),
		UsedFallback:   result.UsedFallback,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return Entry{}, err
	}
	telemetry.Info("entries.created", map[string]any{
		"entry_id":      entry.ID,
		"tier_used":     entry.Tier,
		"used_fallback": entry.UsedFallback,
		"sentiment":     string(entry.Sentiment.Label),
	})
	return entry, nil
}
