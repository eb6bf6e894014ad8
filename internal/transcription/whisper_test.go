package transcription

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"journal-backend/internal/sentiment"
)

func TestWhisperRejectsShortAudio(t *testing.T) {
	adapter, err := NewWhisperAdapter("test-key", 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = adapter.Transcribe(context.Background(), make([]byte, 999), "audio/webm")
	if !errors.Is(err, ErrAudioTooShort) {
		t.Fatalf("expected ErrAudioTooShort, got %v", err)
	}
}

func TestWhisperTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("unexpected model %q", got)
		}
		w.Write([]byte(`{"text":"  today was a good day  "}`))
	}))
	defer srv.Close()

	adapter, err := NewWhisperAdapter("test-key", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adapter.baseURL = srv.URL

	transcript, err := adapter.Transcribe(context.Background(), bytes.Repeat([]byte{1}, 100), "audio/webm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transcript.Text != "today was a good day" {
		t.Fatalf("unexpected transcript %q", transcript.Text)
	}
	if len(transcript.Utterances) != 0 {
		t.Fatalf("whisper should not produce utterances")
	}
}

func TestWhisperHTTPErrorIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	adapter, err := NewWhisperAdapter("bad-key", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adapter.baseURL = srv.URL

	_, err = adapter.Transcribe(context.Background(), bytes.Repeat([]byte{1}, 100), "audio/webm")
	var perr *sentiment.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if perr.Provider != "whisper" {
		t.Fatalf("expected whisper provider, got %q", perr.Provider)
	}
}
