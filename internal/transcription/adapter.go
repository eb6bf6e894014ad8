package transcription

import (
	"context"
	"errors"

	"journal-backend/internal/sentiment"
)

// DefaultMinAudioBytes is the smallest upload worth forwarding to a provider.
// Anything below it is almost certainly under two seconds of audio and yields
// an empty or garbage transcript.
const DefaultMinAudioBytes = 1000

// ErrAudioTooShort is surfaced to the user as a "please record longer"
// message instead of being forwarded to the provider.
var ErrAudioTooShort = errors.New("audio file too short, please record for at least 2-3 seconds")

// Transcript is the adapter output. Utterances are only populated by
// providers that tag sentiment per utterance; for those providers the
// transcript doubles as the voice path's sentiment source.
type Transcript struct {
	Text       string
	Confidence float64
	Utterances []sentiment.Utterance
}

// Adapter turns raw audio into text before it enters the entry pipeline.
type Adapter interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (Transcript, error)
}

func checkAudioSize(audio []byte, minBytes int) error {
	if minBytes <= 0 {
		minBytes = DefaultMinAudioBytes
	}
	if len(audio) < minBytes {
		return ErrAudioTooShort
	}
	return nil
}
