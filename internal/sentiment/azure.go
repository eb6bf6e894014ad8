package sentiment

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
)

const (
	sentimentPath  = "/text/analytics/v3.1/sentiment"
	keyPhrasesPath = "/text/analytics/v3.1/keyPhrases"
)

// AzureClient implements Provider using the Azure Text Analytics service.
type AzureClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewAzureClient constructs an Azure Text Analytics provider.
func NewAzureClient(endpoint, apiKey string) (*AzureClient, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("AZURE_AI_ENDPOINT is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("AZURE_AI_KEY is required")
	}
	return &AzureClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type azureDocument struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

type azureRequest struct {
	Documents []azureDocument `json:"documents"`
}

type azureSentimentResponse struct {
	Documents []struct {
		Sentiment        string `json:"sentiment"`
		ConfidenceScores struct {
			Positive float64 `json:"positive"`
			Neutral  float64 `json:"neutral"`
			Negative float64 `json:"negative"`
		} `json:"confidenceScores"`
	} `json:"documents"`
	Errors []struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"errors"`
}

type azureKeyPhrasesResponse struct {
	Documents []struct {
		KeyPhrases []string `json:"keyPhrases"`
	} `json:"documents"`
}

// Analyze submits a single-document sentiment request, plus a best-effort key
// phrase extraction used downstream to flavor the generation prompt.
func (c *AzureClient) Analyze(ctx context.Context, text string) (Payload, error) {
	req := azureRequest{
		Documents: []azureDocument{{ID: "1", Text: text, Language: "en"}},
	}

	var parsed azureSentimentResponse
	if err := c.post(ctx, sentimentPath, req, &parsed); err != nil {
		return Payload{}, err
	}
	if len(parsed.Errors) > 0 {
		return Payload{}, &ProviderError{
			Provider: "azure",
			Err:      fmt.Errorf("%s: %s", parsed.Errors[0].Error.Code, parsed.Errors[0].Error.Message),
		}
	}
	if len(parsed.Documents) == 0 {
		return Payload{}, &ProviderError{Provider: "azure", Err: errors.New("no sentiment results returned")}
	}

	doc := parsed.Documents[0]
	payload := Payload{
		Kind: KindDocument,
		Scores: Scores{
			Positive: doc.ConfidenceScores.Positive,
			Neutral:  doc.ConfidenceScores.Neutral,
			Negative: doc.ConfidenceScores.Negative,
		},
	}

	// Key phrase failures never fail the analysis.
	var phrases azureKeyPhrasesResponse
	if err := c.post(ctx, keyPhrasesPath, req, &phrases); err == nil && len(phrases.Documents) > 0 {
		payload.KeyPhrases = phrases.Documents[0].KeyPhrases
	}

	return payload, nil
}

func (c *AzureClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ProviderError{Provider: "azure", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return &ProviderError{Provider: "azure", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Provider: "azure", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Provider: "azure", Err: err}
	}
	if resp.StatusCode >= 400 {
		return &ProviderError{
			Provider: "azure",
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", strings.TrimSpace(string(raw))),
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ProviderError{Provider: "azure", Err: fmt.Errorf("response parse: %w", err)}
	}
	return nil
}

var _ Provider = (*AzureClient)(nil)
