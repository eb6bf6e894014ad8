package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"journal-backend/internal/sentiment"
)

const assemblyBaseURL = "https://api.assemblyai.com/v2"

const (
	defaultPollInterval    = 3 * time.Second
	defaultPollMaxAttempts = 100
)

// AssemblyAdapter transcribes audio with AssemblyAI and requests per-utterance
// sentiment tags alongside the transcript, making it the sole sentiment
// source for voice entries. The transcript job is asynchronous: submit, then
// poll the status endpoint on a fixed interval until it completes or errors.
// Polling is bounded; exhausting the attempt budget is a provider failure
// rather than an infinite wait.
type AssemblyAdapter struct {
	apiKey          string
	baseURL         string
	minBytes        int
	pollInterval    time.Duration
	pollMaxAttempts int
	httpClient      *http.Client
}

func NewAssemblyAdapter(apiKey string, minBytes int, pollInterval time.Duration, pollMaxAttempts int) (*AssemblyAdapter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("ASSEMBLYAI_API_KEY is required")
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if pollMaxAttempts <= 0 {
		pollMaxAttempts = defaultPollMaxAttempts
	}
	return &AssemblyAdapter{
		apiKey:          apiKey,
		baseURL:         assemblyBaseURL,
		minBytes:        minBytes,
		pollInterval:    pollInterval,
		pollMaxAttempts: pollMaxAttempts,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type assemblyUploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type assemblySubmitRequest struct {
	AudioURL          string `json:"audio_url"`
	SentimentAnalysis bool   `json:"sentiment_analysis"`
}

type assemblyTranscript struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
	Sentiments []struct {
		Sentiment  string  `json:"sentiment"`
		Confidence float64 `json:"confidence"`
	} `json:"sentiment_analysis_results"`
}

func (a *AssemblyAdapter) Transcribe(ctx context.Context, audio []byte, mimeType string) (Transcript, error) {
	if err := checkAudioSize(audio, a.minBytes); err != nil {
		return Transcript{}, err
	}

	uploadURL, err := a.upload(ctx, audio)
	if err != nil {
		return Transcript{}, err
	}

	transcriptID, err := a.submit(ctx, uploadURL)
	if err != nil {
		return Transcript{}, err
	}

	return a.poll(ctx, transcriptID)
}

func (a *AssemblyAdapter) upload(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/upload", bytes.NewReader(audio))
	if err != nil {
		return "", &sentiment.ProviderError{Provider: "assemblyai", Err: err}
	}
	req.Header.Set("Authorization", a.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	var parsed assemblyUploadResponse
	if err := a.do(req, &parsed); err != nil {
		return "", err
	}
	if parsed.UploadURL == "" {
		return "", &sentiment.ProviderError{Provider: "assemblyai", Err: errors.New("upload returned no url")}
	}
	return parsed.UploadURL, nil
}

func (a *AssemblyAdapter) submit(ctx context.Context, audioURL string) (string, error) {
	payload, err := json.Marshal(assemblySubmitRequest{
		AudioURL:          audioURL,
		SentimentAnalysis: true,
	})
	if err != nil {
		return "", &sentiment.ProviderError{Provider: "assemblyai", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/transcript", bytes.NewReader(payload))
	if err != nil {
		return "", &sentiment.ProviderError{Provider: "assemblyai", Err: err}
	}
	req.Header.Set("Authorization", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var parsed assemblyTranscript
	if err := a.do(req, &parsed); err != nil {
		return "", err
	}
	if parsed.ID == "" {
		return "", &sentiment.ProviderError{Provider: "assemblyai", Err: errors.New("submit returned no transcript id")}
	}
	return parsed.ID, nil
}

func (a *AssemblyAdapter) poll(ctx context.Context, transcriptID string) (Transcript, error) {
	for attempt := 0; attempt < a.pollMaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/transcript/"+transcriptID, nil)
		if err != nil {
			return Transcript{}, &sentiment.ProviderError{Provider: "assemblyai", Err: err}
		}
		req.Header.Set("Authorization", a.apiKey)

		var parsed assemblyTranscript
		if err := a.do(req, &parsed); err != nil {
			return Transcript{}, err
		}

		switch parsed.Status {
		case "completed":
			out := Transcript{
				Text:       strings.TrimSpace(parsed.Text),
				Confidence: parsed.Confidence,
			}
			for _, s := range parsed.Sentiments {
				out.Utterances = append(out.Utterances, sentiment.Utterance{
					Label:      s.Sentiment,
					Confidence: s.Confidence,
				})
			}
			return out, nil
		case "error":
			return Transcript{}, &sentiment.ProviderError{
				Provider: "assemblyai",
				Err:      fmt.Errorf("transcription failed: %s", parsed.Error),
			}
		}

		select {
		case <-ctx.Done():
			return Transcript{}, &sentiment.ProviderError{Provider: "assemblyai", Err: ctx.Err()}
		case <-time.After(a.pollInterval):
		}
	}

	return Transcript{}, &sentiment.ProviderError{
		Provider: "assemblyai",
		Err:      fmt.Errorf("transcript %s not ready after %d polls", transcriptID, a.pollMaxAttempts),
	}
}

func (a *AssemblyAdapter) do(req *http.Request, out any) error {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return &sentiment.ProviderError{Provider: "assemblyai", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &sentiment.ProviderError{Provider: "assemblyai", Err: err}
	}
	if resp.StatusCode >= 400 {
		return &sentiment.ProviderError{
			Provider: "assemblyai",
			Status:   resp.StatusCode,
			Err:      errors.New(strings.TrimSpace(string(raw))),
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &sentiment.ProviderError{Provider: "assemblyai", Err: fmt.Errorf("response parse: %w", err)}
	}
	return nil
}

var _ Adapter = (*AssemblyAdapter)(nil)
