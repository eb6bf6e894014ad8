package athena

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

// DemoClient calls an external demo endpoint that returns a canned persona
// reply together with a mock sentiment override. It sits between the
// generative tier and the local contextual fallback in the waterfall.
type DemoClient struct {
	url        string
	httpClient *http.Client
}

func NewDemoClient(url string) (*DemoClient, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("DEMO_API_URL is required")
	}
	return &DemoClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type demoRequest struct {
	JournalText string `json:"journalText"`
}

type demoResponse struct {
	AzureAnalysis  sentiment.Result `json:"azureAnalysis"`
	AthenaResponse string           `json:"athenaResponse"`
}

// Run returns the demo reply and its sentiment override.
func (c *DemoClient) Run(ctx context.Context, text string) (string, sentiment.Result, error) {
	payload, err := json.Marshal(demoRequest{JournalText: text})
	if err != nil {
		return "", sentiment.Result{}, &GenerationError{Provider: "demo", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", sentiment.Result{}, &GenerationError{Provider: "demo", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", sentiment.Result{}, &GenerationError{Provider: "demo", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", sentiment.Result{}, &GenerationError{Provider: "demo", Err: err}
	}
	if resp.StatusCode >= 400 {
		return "", sentiment.Result{}, &GenerationError{Provider: "demo", Status: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(raw)))}
	}

	var parsed demoResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", sentiment.Result{}, &GenerationError{Provider: "demo", Err: fmt.Errorf("response parse: %w", err)}
	}
	if strings.TrimSpace(parsed.AthenaResponse) == "" {
		return "", sentiment.Result{}, &GenerationError{Provider: "demo", Err: errors.New("empty demo response")}
	}
	return parsed.AthenaResponse, parsed.AzureAnalysis, nil
}
