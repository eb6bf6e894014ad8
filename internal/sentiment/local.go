package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// Compound score thresholds for mapping VADER output onto the three-way label.
const (
	vaderPositiveThreshold = 0.20
	vaderNegativeThreshold = -0.20
)

// LocalProvider scores sentiment offline with VADER. It makes no network
// calls and is selectable by configuration for deployments without a hosted
// analytics service.
type LocalProvider struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (p *LocalProvider) Analyze(ctx context.Context, text string) (Payload, error) {
	if err := ctx.Err(); err != nil {
		return Payload{}, &ProviderError{Provider: "local", Err: err}
	}

	scores := p.analyzer.PolarityScores(text)

	payload := Payload{
		Kind: KindDocument,
		Scores: Scores{
			Positive: scores.Positive,
			Neutral:  scores.Neutral,
			Negative: scores.Negative,
		},
	}

	// Nudge the dominant bucket so the document label derived downstream
	// follows the compound score's verdict rather than raw token ratios.
	switch {
	case scores.Compound >= vaderPositiveThreshold:
		if payload.Scores.Positive <= payload.Scores.Neutral {
			payload.Scores.Positive, payload.Scores.Neutral = payload.Scores.Neutral, payload.Scores.Positive
		}
	case scores.Compound <= vaderNegativeThreshold:
		if payload.Scores.Negative <= payload.Scores.Neutral {
			payload.Scores.Negative, payload.Scores.Neutral = payload.Scores.Neutral, payload.Scores.Negative
		}
	}

	return payload, nil
}

var _ Provider = (*LocalProvider)(nil)
