package entries

import (
	"time"

	"journal-backend/internal/sentiment"
)

// Entry is one journal submission with its analysis and persona reply.
type Entry struct {
	ID             string
	UserID         string
	JournalText    string
	Sentiment      sentiment.Result
	AthenaResponse string
	Tier           string
	UsedFallback   bool
	CreatedAt      time.Time
}
