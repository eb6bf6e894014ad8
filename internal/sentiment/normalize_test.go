package sentiment

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeDocumentMapsScoresDirectly(t *testing.T) {
	result := Normalize(Payload{
		Kind:   KindDocument,
		Scores: Scores{Positive: 0.9, Neutral: 0.05, Negative: 0.05},
	})
	if result.Label != LabelPositive {
		t.Fatalf("expected positive label, got %s", result.Label)
	}
	if !almostEqual(result.Scores.Positive, 0.9) {
		t.Fatalf("expected positive score preserved, got %v", result.Scores.Positive)
	}
}

func TestNormalizeDocumentTieIsNeutral(t *testing.T) {
	result := Normalize(Payload{
		Kind:   KindDocument,
		Scores: Scores{Positive: 0.5, Neutral: 0, Negative: 0.5},
	})
	if result.Label != LabelNeutral {
		t.Fatalf("expected neutral on positive/negative tie, got %s", result.Label)
	}
}

func TestNormalizeDocumentNegativeDominates(t *testing.T) {
	result := Normalize(Payload{
		Kind:   KindDocument,
		Scores: Scores{Positive: 0.1, Neutral: 0.2, Negative: 0.7},
	})
	if result.Label != LabelNegative {
		t.Fatalf("expected negative label, got %s", result.Label)
	}
}

func TestNormalizeDocumentClampsOutOfRange(t *testing.T) {
	result := Normalize(Payload{
		Kind:   KindDocument,
		Scores: Scores{Positive: 1.7, Neutral: -0.3, Negative: 0.2},
	})
	if result.Scores.Positive != 1 {
		t.Fatalf("expected positive clamped to 1, got %v", result.Scores.Positive)
	}
	if result.Scores.Neutral != 0 {
		t.Fatalf("expected neutral clamped to 0, got %v", result.Scores.Neutral)
	}
}

func TestNormalizeUtterancesAveragesOverTotalCount(t *testing.T) {
	result := Normalize(Payload{
		Kind: KindUtterances,
		Utterances: []Utterance{
			{Label: "POSITIVE", Confidence: 0.8},
			{Label: "positive", Confidence: 0.8},
			{Label: "NEGATIVE", Confidence: 0.2},
		},
	})
	if result.Label != LabelPositive {
		t.Fatalf("expected positive label, got %s", result.Label)
	}
	if !almostEqual(result.Scores.Positive, 1.6/3) {
		t.Fatalf("expected positive %v, got %v", 1.6/3, result.Scores.Positive)
	}
	if !almostEqual(result.Scores.Negative, 0.2/3) {
		t.Fatalf("expected negative %v, got %v", 0.2/3, result.Scores.Negative)
	}
	if !almostEqual(result.Scores.Neutral, 0) {
		t.Fatalf("expected neutral 0, got %v", result.Scores.Neutral)
	}
}

func TestNormalizeUtterancesUnknownLabelsCountTowardTotal(t *testing.T) {
	result := Normalize(Payload{
		Kind: KindUtterances,
		Utterances: []Utterance{
			{Label: "positive", Confidence: 1},
			{Label: "mixed", Confidence: 1},
		},
	})
	if !almostEqual(result.Scores.Positive, 0.5) {
		t.Fatalf("expected positive 0.5, got %v", result.Scores.Positive)
	}
}

func TestNormalizeEmptyUtterancesIsNeutralDefault(t *testing.T) {
	result := Normalize(Payload{Kind: KindUtterances})
	if result.Label != LabelNeutral {
		t.Fatalf("expected neutral label, got %s", result.Label)
	}
	want := Scores{Positive: 0.34, Neutral: 0.33, Negative: 0.33}
	if result.Scores != want {
		t.Fatalf("expected %+v, got %+v", want, result.Scores)
	}
}

func TestNeutralDefaultDistribution(t *testing.T) {
	result := NeutralDefault()
	if result.Label != LabelNeutral {
		t.Fatalf("expected neutral label, got %s", result.Label)
	}
	want := Scores{Positive: 0.33, Neutral: 0.34, Negative: 0.33}
	if result.Scores != want {
		t.Fatalf("expected %+v, got %+v", want, result.Scores)
	}
}
