package entries

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/pipeline"
	"journal-backend/internal/shared/server/middleware"
	"journal-backend/internal/transcription"
)

func setupEntriesRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth("dev"))
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func TestCreateEntryEndpoint(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Pipeline: &stubRunner{result: positiveResult()}}
	router := setupEntriesRouter(t, svc)

	body, _ := json.Marshal(map[string]string{"journalText": "I got promoted today!"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/journal/entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID             string `json:"id"`
		AthenaResponse string `json:"athenaResponse"`
		Sentiment      struct {
			Label string `json:"sentiment"`
		} `json:"azureAnalysis"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected entry id")
	}
	if created.AthenaResponse != "Well done, mortal." {
		t.Fatalf("unexpected response %q", created.AthenaResponse)
	}
	if created.Sentiment.Label != "positive" {
		t.Fatalf("unexpected sentiment %q", created.Sentiment.Label)
	}
}

func TestCreateEntryValidationError(t *testing.T) {
	svc := &Service{
		Repo:     NewMemoryRepo(),
		Pipeline: &stubRunner{err: &pipeline.ValidationError{Reason: "journal text cannot be empty"}},
	}
	router := setupEntriesRouter(t, svc)

	body, _ := json.Marshal(map[string]string{"journalText": ""})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/journal/entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var body2 struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body2); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body2.Error.Code != "validation_error" {
		t.Fatalf("unexpected error code %q", body2.Error.Code)
	}
}

func TestCreateVoiceEntryTooShortAudio(t *testing.T) {
	svc := &Service{
		Repo:        NewMemoryRepo(),
		Pipeline:    &stubRunner{result: positiveResult()},
		Transcriber: stubAdapter{err: transcription.ErrAudioTooShort},
	}
	router := setupEntriesRouter(t, svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "clip.webm")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("tiny"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/journal/entries/voice", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Code != "audio_too_short" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}
}

func TestTranscribeEndpoint(t *testing.T) {
	svc := &Service{
		Repo:        NewMemoryRepo(),
		Pipeline:    &stubRunner{result: positiveResult()},
		Transcriber: stubAdapter{transcript: transcription.Transcript{Text: "today was great"}},
	}
	router := setupEntriesRouter(t, svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "clip.webm")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(make([]byte, 2000))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Text != "today was great" {
		t.Fatalf("unexpected transcript %q", body.Text)
	}
}

func TestTranscribeEndpointNotConfigured(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Pipeline: &stubRunner{result: positiveResult()}}
	router := setupEntriesRouter(t, svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "clip.webm")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(make([]byte, 2000))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestGetEntryNotFound(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Pipeline: &stubRunner{result: positiveResult()}}
	router := setupEntriesRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/entries/nope", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestListEntriesScopedToIdentity(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Pipeline: &stubRunner{result: positiveResult()}}
	router := setupEntriesRouter(t, svc)

	// Seed one entry through the API as the guest identity.
	body, _ := json.Marshal(map[string]string{"journalText": "hello"})
	seed := httptest.NewRequest(http.MethodPost, "/api/v1/journal/entries", bytes.NewReader(body))
	seed.Header.Set("Content-Type", "application/json")
	addGuestHeader(seed)
	router.ServeHTTP(httptest.NewRecorder(), seed)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/entries", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var list struct {
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(list.Entries))
	}

	// A different guest sees nothing.
	other := httptest.NewRequest(http.MethodGet, "/api/v1/journal/entries", nil)
	other.Header.Set("X-Guest-Id", "someone-else")
	otherResp := httptest.NewRecorder()
	router.ServeHTTP(otherResp, other)

	var otherList struct {
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.NewDecoder(otherResp.Body).Decode(&otherList); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(otherList.Entries) != 0 {
		t.Fatalf("expected no entries for other guest, got %d", len(otherList.Entries))
	}
}

func TestDeleteEntryEndpoint(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Pipeline: &stubRunner{result: positiveResult()}}
	router := setupEntriesRouter(t, svc)

	body, _ := json.Marshal(map[string]string{"journalText": "hello"})
	seed := httptest.NewRequest(http.MethodPost, "/api/v1/journal/entries", bytes.NewReader(body))
	seed.Header.Set("Content-Type", "application/json")
	addGuestHeader(seed)
	seedResp := httptest.NewRecorder()
	router.ServeHTTP(seedResp, seed)

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(seedResp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/journal/entries/"+created.ID, nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}
