package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/analytics"
	googleauth "journal-backend/internal/auth"
	"journal-backend/internal/entries"
	"journal-backend/internal/shared/config"
	"journal-backend/internal/shared/server/middleware"
	"journal-backend/internal/shared/server/respond"
	"journal-backend/internal/users"
)

// RouterDeps holds the handlers the router mounts. Google may be nil when
// OAuth is not configured.
type RouterDeps struct {
	Entries   *entries.Handler
	Analytics *analytics.Handler
	Users     *users.Handler
	Google    *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.Google != nil {
		deps.Google.RegisterRoutes(api)
	}
	if deps.Users != nil {
		deps.Users.RegisterAuthRoutes(api)
		deps.Users.RegisterRoutes(api)
	}
	if deps.Entries != nil {
		deps.Entries.RegisterRoutes(api)
	}
	if deps.Analytics != nil {
		deps.Analytics.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
