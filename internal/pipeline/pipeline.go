package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"journal-backend/internal/athena"
	"journal-backend/internal/sentiment"
	"journal-backend/internal/shared/telemetry"
)

// Tier identifies which rung of the generation waterfall produced a reply.
type Tier string

const (
	TierGenerative Tier = "generative"
	TierDemo       Tier = "demo"
	TierContextual Tier = "contextual"
	TierGeneric    Tier = "generic"
)

const defaultMaxJournalLength = 5000

// ValidationError is the only failure Run surfaces to its caller; everything
// downstream of validation degrades into a lower tier instead of erroring.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid journal text: %s", e.Reason)
}

// Result is what the pipeline hands back for persistence and display.
type Result struct {
	Sentiment    sentiment.Result
	Response     string
	UsedFallback bool
	Tier         Tier
}

// DemoTier is the optional externally hosted tier between the generative
// provider and the local contextual fallback. It returns a reply plus a mock
// sentiment override.
type DemoTier interface {
	Run(ctx context.Context, text string) (string, sentiment.Result, error)
}

// Pipeline orchestrates sentiment analysis, normalization and the response
// generation waterfall for one journal submission. Each Run is independent;
// the pipeline holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	Sentiment  sentiment.Provider // primary provider; nil means no live analysis
	Generator  athena.Generator   // generative tier; nil means unconfigured
	Demo       DemoTier           // optional demo tier
	Contextual athena.Generator
	Generic    athena.Generator
	MaxLength  int
}

// New constructs a Pipeline with the local fallback tiers wired in.
func New(provider sentiment.Provider, generator athena.Generator, demo DemoTier, maxLength int) *Pipeline {
	return &Pipeline{
		Sentiment:  provider,
		Generator:  generator,
		Demo:       demo,
		Contextual: athena.NewContextualFallback(),
		Generic:    athena.GenericFallback{},
		MaxLength:  maxLength,
	}
}

// Run executes the text-entry topology: primary sentiment with a neutral
// substitute on failure, then the generation waterfall. Once validation
// passes it always returns a Result.
func (p *Pipeline) Run(ctx context.Context, text string) (Result, error) {
	if err := p.validate(text); err != nil {
		return Result{}, err
	}

	result := sentiment.NeutralDefault()
	var keyPhrases []string
	degraded := true

	if p.Sentiment != nil {
		payload, err := p.Sentiment.Analyze(ctx, text)
		if err != nil {
			telemetry.Warn("pipeline.sentiment_fallback", map[string]any{
				"error": err.Error(),
			})
		} else {
			result = sentiment.Normalize(payload)
			keyPhrases = payload.KeyPhrases
			degraded = false
		}
	}

	return p.generate(ctx, text, result, keyPhrases, degraded), nil
}

// RunWithSentiment executes the voice-entry topology: the caller already
// holds a normalized result from the transcription provider, so the analysis
// stage is skipped entirely.
func (p *Pipeline) RunWithSentiment(ctx context.Context, text string, result sentiment.Result) (Result, error) {
	if err := p.validate(text); err != nil {
		return Result{}, err
	}
	return p.generate(ctx, text, result, nil, false), nil
}

func (p *Pipeline) validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Reason: "journal text cannot be empty"}
	}
	max := p.MaxLength
	if max <= 0 {
		max = defaultMaxJournalLength
	}
	if utf8.RuneCountInString(text) > max {
		return &ValidationError{Reason: fmt.Sprintf("journal text is too long (max %d characters)", max)}
	}
	return nil
}

func (p *Pipeline) generate(ctx context.Context, text string, result sentiment.Result, keyPhrases []string, degraded bool) Result {
	input := athena.Input{
		JournalText: text,
		Sentiment:   result,
		KeyPhrases:  keyPhrases,
	}

	if p.Generator != nil {
		response, err := p.Generator.Generate(ctx, input)
		if err == nil {
			return Result{
				Sentiment:    result,
				Response:     response,
				UsedFallback: degraded,
				Tier:         TierGenerative,
			}
		}
		telemetry.Warn("pipeline.generation_fallback", map[string]any{
			"tier":  string(TierGenerative),
			"error": err.Error(),
		})
	}

	if p.Demo != nil {
		response, override, err := p.Demo.Run(ctx, text)
		if err == nil {
			return Result{
				Sentiment:    override,
				Response:     response,
				UsedFallback: true,
				Tier:         TierDemo,
			}
		}
		telemetry.Warn("pipeline.generation_fallback", map[string]any{
			"tier":  string(TierDemo),
			"error": err.Error(),
		})
	}

	return p.contextualOrGeneric(ctx, input, result)
}

// contextualOrGeneric runs the offline contextual tier, falling through to
// the fixed generic reply only if the keyword matcher itself panics. The
// generic tier cannot fail, which is what lets Run guarantee a displayable
// result to callers with no error-recovery path of their own.
func (p *Pipeline) contextualOrGeneric(ctx context.Context, input athena.Input, result sentiment.Result) (out Result) {
	out = Result{
		Sentiment:    result,
		UsedFallback: true,
		Tier:         TierGeneric,
	}
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("pipeline.contextual_panic", map[string]any{"panic": rec})
			out.Response, _ = p.generic().Generate(ctx, input)
		}
	}()

	contextual := p.Contextual
	if contextual == nil {
		contextual = athena.NewContextualFallback()
	}
	response, err := contextual.Generate(ctx, input)
	if err != nil {
		out.Response, _ = p.generic().Generate(ctx, input)
		return out
	}
	out.Response = response
	out.Tier = TierContextual
	return out
}

func (p *Pipeline) generic() athena.Generator {
	if p.Generic != nil {
		return p.Generic
	}
	return athena.GenericFallback{}
}
