package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/shared/server/middleware"
	"journal-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analytics service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analytics routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/mood-timeline", h.moodTimeline)
	rg.GET("/analytics/word-cloud", h.wordCloud)
	rg.GET("/analytics/streak", h.streak)
}

func (h *Handler) moodTimeline(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	days := queryInt(c, "days", 0)

	points, err := h.Svc.MoodTimeline(c.Request.Context(), userID, days)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute mood timeline", nil)
		return
	}
	respond.OK(c, gin.H{"timeline": points})
}

func (h *Handler) wordCloud(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	days := queryInt(c, "days", 0)
	limit := queryInt(c, "limit", 0)

	words, err := h.Svc.WordCloud(c.Request.Context(), userID, days, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute word cloud", nil)
		return
	}
	respond.OK(c, gin.H{"words": words})
}

func (h *Handler) streak(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	streak, err := h.Svc.Streaks(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute streaks", nil)
		return
	}
	respond.OK(c, streak)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
