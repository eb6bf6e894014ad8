package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/analytics"
	"journal-backend/internal/athena"
	googleauth "journal-backend/internal/auth"
	"journal-backend/internal/entries"
	"journal-backend/internal/pipeline"
	"journal-backend/internal/sentiment"
	"journal-backend/internal/shared/config"
	"journal-backend/internal/shared/server"
	"journal-backend/internal/shared/storage/db"
	"journal-backend/internal/transcription"
	"journal-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	EntriesRepo      entries.Repo
	UsersRepo        users.Repo
	Pipeline         *pipeline.Pipeline
	EntriesService   *entries.Service
	AnalyticsService *analytics.Service
	UsersService     *users.Service
	EntriesHandler   *entries.Handler
	AnalyticsHandler *analytics.Handler
	UsersHandler     *users.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(cfg, server.RouterDeps{
		Entries:   app.EntriesHandler,
		Analytics: app.AnalyticsHandler,
		Users:     app.UsersHandler,
		Google:    app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(app *App) error {
	var entriesRepo entries.Repo
	var usersRepo users.Repo
	var entrySource analytics.EntrySource

	if app.DB != nil {
		pgEntries := &entries.PGRepo{DB: app.DB}
		entriesRepo = pgEntries
		entrySource = pgEntries
		usersRepo = &users.PGRepo{DB: app.DB}
	} else {
		memEntries := entries.NewMemoryRepo()
		entriesRepo = memEntries
		entrySource = memEntries
		usersRepo = users.NewMemoryRepo()
	}

	provider, err := buildSentimentProvider(app.Config)
	if err != nil {
		return err
	}
	generator := buildGenerator(app.Config)
	demo := buildDemoTier(app.Config)
	adapter, err := buildTranscriber(app.Config)
	if err != nil {
		return err
	}

	app.Pipeline = pipeline.New(provider, generator, demo, app.Config.MaxJournalLength)

	userSvc := users.NewService(usersRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	entriesSvc := &entries.Service{
		Repo:        entriesRepo,
		Pipeline:    app.Pipeline,
		Transcriber: adapter,
	}
	analyticsSvc := analytics.NewService(entrySource)

	app.EntriesRepo = entriesRepo
	app.UsersRepo = usersRepo
	app.EntriesService = entriesSvc
	app.AnalyticsService = analyticsSvc
	app.UsersService = userSvc
	app.EntriesHandler = entries.NewHandler(entriesSvc)
	app.AnalyticsHandler = analytics.NewHandler(analyticsSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}

// buildSentimentProvider picks the primary analyzer. Azure needs credentials;
// without them the offline lexicon provider keeps analysis working.
func buildSentimentProvider(cfg config.Config) (sentiment.Provider, error) {
	if cfg.SentimentProvider == "azure" {
		if cfg.AzureAIEndpoint != "" && cfg.AzureAIKey != "" {
			return sentiment.NewAzureClient(cfg.AzureAIEndpoint, cfg.AzureAIKey)
		}
		log.Printf("bootstrap: azure sentiment not configured; using local provider")
	}
	return sentiment.NewLocalProvider(), nil
}

func buildGenerator(cfg config.Config) athena.Generator {
	if cfg.GeminiAPIKey == "" {
		log.Printf("bootstrap: GEMINI_API_KEY empty; generative tier disabled")
		return nil
	}
	client, err := athena.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("bootstrap: gemini client unavailable: %v", err)
		return nil
	}
	return client
}

func buildDemoTier(cfg config.Config) pipeline.DemoTier {
	if cfg.DemoAPIURL == "" {
		return nil
	}
	client, err := athena.NewDemoClient(cfg.DemoAPIURL)
	if err != nil {
		log.Printf("bootstrap: demo tier unavailable: %v", err)
		return nil
	}
	return client
}

func buildTranscriber(cfg config.Config) (transcription.Adapter, error) {
	switch cfg.SpeechProvider {
	case "whisper":
		if cfg.OpenAIAPIKey == "" {
			log.Printf("bootstrap: OPENAI_API_KEY empty; voice entries disabled")
			return nil, nil
		}
		return transcription.NewWhisperAdapter(cfg.OpenAIAPIKey, cfg.MinAudioBytes)
	default:
		if cfg.AssemblyAIKey == "" {
			log.Printf("bootstrap: ASSEMBLYAI_API_KEY empty; voice entries disabled")
			return nil, nil
		}
		return transcription.NewAssemblyAdapter(cfg.AssemblyAIKey, cfg.MinAudioBytes, cfg.PollInterval, cfg.PollMaxAttempts)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
