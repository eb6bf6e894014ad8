package sentiment

// Label is the canonical sentiment classification.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// Scores is the three-way confidence distribution. Each value is in [0,1]
// and the three should sum to roughly 1; providers are not required to
// guarantee exact normalization, so drift is tolerated.
type Scores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Result is the canonical sentiment shape every provider is mapped into.
type Result struct {
	Label  Label  `json:"sentiment"`
	Scores Scores `json:"confidenceScores"`
}

// NeutralDefault is the substitute result used when sentiment analysis fails
// outright and the pipeline degrades instead of surfacing the error.
func NeutralDefault() Result {
	return Result{
		Label:  LabelNeutral,
		Scores: Scores{Positive: 0.33, Neutral: 0.34, Negative: 0.33},
	}
}
