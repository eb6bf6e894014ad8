package sentiment

import (
	"context"
	"fmt"
)

// PayloadKind discriminates the raw shapes providers emit.
type PayloadKind string

const (
	// KindDocument is a single document-level label plus confidence scores.
	KindDocument PayloadKind = "document"
	// KindUtterances is a list of per-utterance tags with per-tag confidence.
	KindUtterances PayloadKind = "utterances"
)

// Utterance is one tagged span from an utterance-level provider.
type Utterance struct {
	Label      string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// Payload is a provider's raw output before normalization.
type Payload struct {
	Kind       PayloadKind
	Scores     Scores
	Utterances []Utterance
	KeyPhrases []string
}

// Provider wraps one external sentiment API call. Implementations perform no
// retries; the fallback policy lives in the entry pipeline.
type Provider interface {
	Analyze(ctx context.Context, text string) (Payload, error)
}

// ProviderError captures a sentiment service failure: HTTP error, transport
// error, timeout or malformed payload.
type ProviderError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("sentiment provider %s: http status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("sentiment provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
