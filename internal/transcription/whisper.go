package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"journal-backend/internal/sentiment"
)

const whisperURL = "https://api.openai.com/v1/audio/transcriptions"

// WhisperAdapter transcribes audio with the OpenAI Whisper API. It returns
// plain text only; the text-entry sentiment topology applies downstream.
type WhisperAdapter struct {
	apiKey     string
	baseURL    string
	minBytes   int
	httpClient *http.Client
}

func NewWhisperAdapter(apiKey string, minBytes int) (*WhisperAdapter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	return &WhisperAdapter{
		apiKey:   apiKey,
		baseURL:  whisperURL,
		minBytes: minBytes,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type whisperResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *WhisperAdapter) Transcribe(ctx context.Context, audio []byte, mimeType string) (Transcript, error) {
	if err := checkAudioSize(audio, a.minBytes); err != nil {
		return Transcript{}, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "audio.webm")
	if err != nil {
		return Transcript{}, &sentiment.ProviderError{Provider: "whisper", Err: err}
	}
	if _, err := fileWriter.Write(audio); err != nil {
		return Transcript{}, &sentiment.ProviderError{Provider: "whisper", Err: err}
	}
	_ = writer.WriteField("model", "whisper-1")
	_ = writer.WriteField("language", "en")
	if err := writer.Close(); err != nil {
		return Transcript{}, &sentiment.ProviderError{Provider: "whisper", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, body)
	if err != nil {
		return Transcript{}, &sentiment.ProviderError{Provider: "whisper", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Transcript{}, &sentiment.ProviderError{Provider: "whisper", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transcript{}, &sentiment.ProviderError{Provider: "whisper", Err: err}
	}
	if resp.StatusCode >= 400 {
		return Transcript{}, &sentiment.ProviderError{
			Provider: "whisper",
			Status:   resp.StatusCode,
			Err:      errors.New(strings.TrimSpace(string(raw))),
		}
	}

	var parsed whisperResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Transcript{}, &sentiment.ProviderError{Provider: "whisper", Err: fmt.Errorf("response parse: %w", err)}
	}
	if parsed.Error != nil {
		return Transcript{}, &sentiment.ProviderError{Provider: "whisper", Err: errors.New(parsed.Error.Message)}
	}

	return Transcript{Text: strings.TrimSpace(parsed.Text)}, nil
}

var _ Adapter = (*WhisperAdapter)(nil)
