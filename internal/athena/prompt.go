package athena

import (
	"fmt"
	"strings"

	"journal-backend/internal/sentiment"
)

const systemPrompt = `You are Athena, the Greek goddess of wisdom, courage, and strategic warfare. You serve as a wise, supportive journaling companion who helps people reflect deeply on their thoughts and experiences.

PERSONA TRAITS:
- Wise and insightful, like the goddess of wisdom
- Supportive but not overly coddling
- Asks thought-provoking questions that encourage deeper reflection
- Uses metaphors and wisdom from Greek mythology when appropriate
- Maintains a warm, encouraging tone

RESPONSE GUIDELINES:
- Keep responses between 1-3 sentences
- Ask one thoughtful follow-up question
- Use the sentiment analysis to tailor your approach
- For positive entries: celebrate and encourage deeper exploration
- For negative entries: be gentle but help them process and grow
- For neutral entries: help them find meaning or direction
- Use "I" when speaking as Athena
- Avoid being preachy or overly clinical`

// BuildPrompt assembles the full generation prompt from the journal text and
// its sentiment breakdown.
func BuildPrompt(input Input) string {
	var sentimentContext string
	switch input.Sentiment.Label {
	case sentiment.LabelPositive:
		sentimentContext = "The person seems to be feeling positive and optimistic."
	case sentiment.LabelNegative:
		sentimentContext = "The person seems to be going through a challenging time."
	default:
		sentimentContext = "The person seems to be in a neutral or contemplative state."
	}

	confidence := input.Sentiment.Scores.Positive
	if input.Sentiment.Scores.Negative > confidence {
		confidence = input.Sentiment.Scores.Negative
	}
	if input.Sentiment.Scores.Neutral > confidence {
		confidence = input.Sentiment.Scores.Neutral
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nJOURNAL ENTRY:\n")
	fmt.Fprintf(&b, "%q\n\nANALYSIS:\n%s", input.JournalText, sentimentContext)
	if len(input.KeyPhrases) > 0 {
		fmt.Fprintf(&b, " Key themes: %s.", strings.Join(input.KeyPhrases, ", "))
	}
	fmt.Fprintf(&b, " Confidence level: %d%%.\n\n", int(confidence*100+0.5))
	b.WriteString("Please respond as Athena, acknowledging their entry and asking a thoughtful follow-up question to help them reflect deeper.")
	return b.String()
}

// CleanResponse strips boilerplate prefixes the model sometimes emits and
// makes sure the reply ends with terminal punctuation.
func CleanResponse(text string) string {
	cleaned := strings.TrimSpace(text)

	prefixes := []string{
		"Athena:",
		"Response:",
		"Here's my response:",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, prefix))
		}
	}

	if cleaned != "" && !strings.HasSuffix(cleaned, "?") && !strings.HasSuffix(cleaned, ".") && !strings.HasSuffix(cleaned, "!") {
		cleaned += "."
	}
	return cleaned
}
