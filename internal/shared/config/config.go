package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string

	// Sentiment analysis
	SentimentProvider string // "azure" or "local"
	AzureAIEndpoint   string
	AzureAIKey        string
	MaxJournalLength  int

	// Response generation
	GeminiAPIKey string
	GeminiModel  string
	DemoAPIURL   string

	// Speech transcription
	SpeechProvider   string // "whisper" or "assemblyai"
	OpenAIAPIKey     string
	AssemblyAIKey    string
	PollInterval     time.Duration
	PollMaxAttempts  int
	MinAudioBytes    int

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		Env:             env,
		DatabaseURL:     dbURL,

		SentimentProvider: normalizeSentimentProvider(getEnv("SENTIMENT_PROVIDER", "azure")),
		AzureAIEndpoint:   getEnv("AZURE_AI_ENDPOINT", ""),
		AzureAIKey:        getEnv("AZURE_AI_KEY", ""),
		MaxJournalLength:  getEnvInt("MAX_JOURNAL_LENGTH", 5000),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		DemoAPIURL:   getEnv("DEMO_API_URL", ""),

		SpeechProvider:  normalizeSpeechProvider(getEnv("SPEECH_PROVIDER", "assemblyai")),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AssemblyAIKey:   getEnv("ASSEMBLYAI_API_KEY", ""),
		PollInterval:    getEnvDuration("TRANSCRIPT_POLL_INTERVAL", 3*time.Second),
		PollMaxAttempts: getEnvInt("TRANSCRIPT_POLL_MAX_ATTEMPTS", 100),
		MinAudioBytes:   getEnvInt("MIN_AUDIO_BYTES", 1000),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeSentimentProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local", "vader":
		return "local"
	default:
		return "azure"
	}
}

func normalizeSpeechProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "whisper", "openai":
		return "whisper"
	default:
		return "assemblyai"
	}
}
