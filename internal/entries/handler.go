package entries

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/pipeline"
	"journal-backend/internal/sentiment"
	"journal-backend/internal/shared/server/middleware"
	"journal-backend/internal/shared/server/respond"
	"journal-backend/internal/transcription"
)

// maxAudioUploadBytes caps voice uploads at 25MB, the Whisper API's own limit.
const maxAudioUploadBytes = 25 << 20

// Handler wires HTTP handlers to the entries service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches journal entry routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/journal/entries", h.createEntry)
	rg.POST("/journal/entries/voice", h.createVoiceEntry)
	rg.POST("/transcribe", h.transcribe)
	rg.GET("/journal/entries", h.listEntries)
	rg.GET("/journal/entries/:id", h.getEntry)
	rg.DELETE("/journal/entries/:id", h.deleteEntry)
}

type createEntryRequest struct {
	JournalText string `json:"journalText"`
}

type entryResponse struct {
	ID             string           `json:"id"`
	JournalText    string           `json:"journalText"`
	Sentiment      sentiment.Result `json:"azureAnalysis"`
	AthenaResponse string           `json:"athenaResponse"`
	Tier           string           `json:"tier"`
	UsedFallback   bool             `json:"usedFallback"`
	CreatedAt      time.Time        `json:"createdAt"`
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:             e.ID,
		JournalText:    e.JournalText,
		Sentiment:      e.Sentiment,
		AthenaResponse: e.AthenaResponse,
		Tier:           e.Tier,
		UsedFallback:   e.UsedFallback,
		CreatedAt:      e.CreatedAt,
	}
}

func (h *Handler) createEntry(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	entry, err := h.Svc.Create(c.Request.Context(), userID, req.JournalText)
	if err != nil {
		var verr *pipeline.ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Reason, nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create entry", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, toEntryResponse(entry))
}

// readAudioUpload extracts the "audio" multipart file, enforcing the size cap.
// On failure it writes the error response and returns ok=false.
func readAudioUpload(c *gin.Context) (audio []byte, mimeType string, ok bool) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "audio file is required", nil)
		return nil, "", false
	}
	if fileHeader.Size > maxAudioUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "audio file is too large (max 25MB)", nil)
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read audio file", nil)
		return nil, "", false
	}
	defer file.Close()

	audio, err = io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read audio file", nil)
		return nil, "", false
	}
	return audio, fileHeader.Header.Get("Content-Type"), true
}

func (h *Handler) createVoiceEntry(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	audio, mimeType, ok := readAudioUpload(c)
	if !ok {
		return
	}

	entry, transcribed, err := h.Svc.CreateFromVoice(c.Request.Context(), userID, audio, mimeType)
	if err != nil {
		var verr *pipeline.ValidationError
		switch {
		case errors.Is(err, ErrTranscriptionUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "voice entries are not available", nil)
		case errors.Is(err, transcription.ErrAudioTooShort):
			respond.Error(c, http.StatusBadRequest, "audio_too_short", err.Error(), nil)
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Reason, nil)
		default:
			respond.Error(c, http.StatusBadGateway, "transcription_failed", "failed to transcribe audio", nil)
		}
		return
	}

	resp := toEntryResponse(entry)
	respond.JSON(c, http.StatusCreated, gin.H{
		"id":              resp.ID,
		"journalText":     resp.JournalText,
		"transcribedText": transcribed,
		"azureAnalysis":   resp.Sentiment,
		"athenaResponse":  resp.AthenaResponse,
		"tier":            resp.Tier,
		"usedFallback":    resp.UsedFallback,
		"createdAt":       resp.CreatedAt,
	})
}

func (h *Handler) transcribe(c *gin.Context) {
	audio, mimeType, ok := readAudioUpload(c)
	if !ok {
		return
	}

	text, err := h.Svc.Transcribe(c.Request.Context(), audio, mimeType)
	if err != nil {
		switch {
		case errors.Is(err, ErrTranscriptionUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "transcription is not available", nil)
		case errors.Is(err, transcription.ErrAudioTooShort):
			respond.Error(c, http.StatusBadRequest, "audio_too_short", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "transcription_failed", "failed to transcribe audio", nil)
		}
		return
	}

	respond.OK(c, gin.H{"text": text})
}

func (h *Handler) listEntries(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 10
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list entries", nil)
		return
	}

	resp := make([]entryResponse, 0, len(items))
	for _, e := range items {
		resp = append(resp, toEntryResponse(e))
	}
	respond.JSON(c, http.StatusOK, gin.H{"entries": resp})
}

func (h *Handler) getEntry(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	entryID := c.Param("id")
	if entryID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "entry id is required", nil)
		return
	}

	entry, err := h.Svc.Get(c.Request.Context(), userID, entryID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "entry not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch entry", nil)
		}
		return
	}

	respond.OK(c, toEntryResponse(entry))
}

func (h *Handler) deleteEntry(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	entryID := c.Param("id")
	if entryID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "entry id is required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), userID, entryID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "entry not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete entry", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
