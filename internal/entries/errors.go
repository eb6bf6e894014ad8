package entries

import "errors"

// ErrNotFound is returned when an entry does not exist or belongs to
// another user.
var ErrNotFound = errors.New("entry not found")

// ErrTranscriptionUnavailable is returned when no speech provider is
// configured for voice entries.
var ErrTranscriptionUnavailable = errors.New("transcription is not configured")
