package sentiment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newAzureTestClient(t *testing.T, handler http.Handler) (*AzureClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewAzureClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client, srv
}

func TestAzureClientAnalyze(t *testing.T) {
	var gotKey string
	client, _ := newAzureTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		switch r.URL.Path {
		case "/text/analytics/v3.1/sentiment":
			w.Write([]byte(`{"documents":[{"sentiment":"positive","confidenceScores":{"positive":0.85,"neutral":0.1,"negative":0.05}}]}`))
		case "/text/analytics/v3.1/keyPhrases":
			w.Write([]byte(`{"documents":[{"keyPhrases":["job interview","new city"]}]}`))
		default:
			http.NotFound(w, r)
		}
	}))

	payload, err := client.Analyze(context.Background(), "I got the job!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "test-key" {
		t.Fatalf("expected subscription key header, got %q", gotKey)
	}
	if payload.Kind != KindDocument {
		t.Fatalf("expected document payload, got %v", payload.Kind)
	}
	if payload.Scores.Positive != 0.85 {
		t.Fatalf("expected positive 0.85, got %v", payload.Scores.Positive)
	}
	if len(payload.KeyPhrases) != 2 {
		t.Fatalf("expected 2 key phrases, got %v", payload.KeyPhrases)
	}
}

func TestAzureClientKeyPhraseFailureIsNotFatal(t *testing.T) {
	client, _ := newAzureTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/text/analytics/v3.1/sentiment" {
			w.Write([]byte(`{"documents":[{"sentiment":"neutral","confidenceScores":{"positive":0.2,"neutral":0.6,"negative":0.2}}]}`))
			return
		}
		http.Error(w, "key phrases unavailable", http.StatusInternalServerError)
	}))

	payload, err := client.Analyze(context.Background(), "a quiet day")
	if err != nil {
		t.Fatalf("expected analysis to survive key phrase failure, got %v", err)
	}
	if len(payload.KeyPhrases) != 0 {
		t.Fatalf("expected no key phrases, got %v", payload.KeyPhrases)
	}
}

func TestAzureClientHTTPErrorIsProviderError(t *testing.T) {
	client, _ := newAzureTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))

	_, err := client.Analyze(context.Background(), "anything")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if perr.Status != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", perr.Status)
	}
	if perr.Provider != "azure" {
		t.Fatalf("expected azure provider, got %q", perr.Provider)
	}
}

func TestAzureClientEmptyDocuments(t *testing.T) {
	client, _ := newAzureTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[]}`))
	}))

	if _, err := client.Analyze(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error for empty documents")
	}
}
