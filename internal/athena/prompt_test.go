package athena

import (
	"strings"
	"testing"

	"journal-backend/internal/sentiment"
)

func TestBuildPromptIncludesSentimentAndThemes(t *testing.T) {
	prompt := BuildPrompt(Input{
		JournalText: "I got the job offer",
		Sentiment: sentiment.Result{
			Label:  sentiment.LabelPositive,
			Scores: sentiment.Scores{Positive: 0.9, Neutral: 0.05, Negative: 0.05},
		},
		KeyPhrases: []string{"job offer"},
	})
	if !strings.Contains(prompt, "feeling positive") {
		t.Fatalf("expected positive sentiment context in prompt")
	}
	if !strings.Contains(prompt, "Key themes: job offer.") {
		t.Fatalf("expected key themes in prompt")
	}
	if !strings.Contains(prompt, "Confidence level: 90%.") {
		t.Fatalf("expected confidence percentage in prompt")
	}
}

func TestCleanResponse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Athena: Well done, mortal.", "Well done, mortal."},
		{"Response: What holds you back?", "What holds you back?"},
		{"Here's my response: Courage grows", "Courage grows."},
		{"  spaced out  ", "spaced out."},
		{"Already terminal!", "Already terminal!"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanResponse(tc.in); got != tc.want {
			t.Errorf("CleanResponse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
