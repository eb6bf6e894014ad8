package sentiment

import "strings"

// Normalize converts any supported provider payload into the canonical
// Result shape. It is pure and never fails: missing or absent confidence
// fields are treated as zero and the reduction proceeds.
func Normalize(p Payload) Result {
	switch p.Kind {
	case KindUtterances:
		return normalizeUtterances(p.Utterances)
	default:
		return normalizeDocument(p.Scores)
	}
}

func normalizeDocument(scores Scores) Result {
	return Result{
		Label:  dominantLabel(scores),
		Scores: clampScores(scores),
	}
}

// normalizeUtterances averages per-utterance confidence into three buckets
// over the total utterance count, then takes the argmax. An empty list maps
// to the neutral default distribution.
func normalizeUtterances(utterances []Utterance) Result {
	if len(utterances) == 0 {
		return Result{
			Label:  LabelNeutral,
			Scores: Scores{Positive: 0.34, Neutral: 0.33, Negative: 0.33},
		}
	}

	var sum Scores
	for _, u := range utterances {
		switch strings.ToLower(strings.TrimSpace(u.Label)) {
		case "positive":
			sum.Positive += u.Confidence
		case "negative":
			sum.Negative += u.Confidence
		case "neutral":
			sum.Neutral += u.Confidence
		}
	}

	total := float64(len(utterances))
	scores := Scores{
		Positive: sum.Positive / total,
		Neutral:  sum.Neutral / total,
		Negative: sum.Negative / total,
	}
	return Result{
		Label:  dominantLabel(scores),
		Scores: clampScores(scores),
	}
}

// dominantLabel picks the argmax bucket. A bucket must strictly beat both
// others to win; any tie at the top resolves to neutral.
func dominantLabel(scores Scores) Label {
	if scores.Positive > scores.Negative && scores.Positive > scores.Neutral {
		return LabelPositive
	}
	if scores.Negative > scores.Positive && scores.Negative > scores.Neutral {
		return LabelNegative
	}
	return LabelNeutral
}

func clampScores(scores Scores) Scores {
	return Scores{
		Positive: clamp01(scores.Positive),
		Neutral:  clamp01(scores.Neutral),
		Negative: clamp01(scores.Negative),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
