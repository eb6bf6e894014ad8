package athena

import (
	"context"
	"fmt"

	"journal-backend/internal/sentiment"
)

// Input captures what a generator needs to produce a persona reply.
type Input struct {
	JournalText string
	Sentiment   sentiment.Result
	KeyPhrases  []string
}

// Generator produces Athena's reply for a journal entry. Each implementation
// only knows how to produce output; the waterfall that decides when each one
// is tried lives in the entry pipeline.
type Generator interface {
	Generate(ctx context.Context, input Input) (string, error)
}

// GenerationError captures a generative-text service failure: HTTP error,
// transport error, timeout or an empty completion.
type GenerationError struct {
	Provider string
	Status   int
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("response generator %s: http status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("response generator %s: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
