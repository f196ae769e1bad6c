package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting for the platform. It is built
// once at process start and injected into each component.
type Config struct {
	AppName     string
	Version     string
	Environment string
	Debug       bool

	Port      string
	JWTSecret string

	AI AI

	ComplianceLevel string
	ExportDir       string
	SessionFile     string
}

// AI holds completion-provider settings.
type AI struct {
	Provider    string // "openai" or "claude"
	OpenAIKey   string
	ClaudeKey   string
	Model       string
	Temperature float64
	MaxTokens   int
	SystemURL   string // override for the provider endpoint, used in tests
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Load reads configuration from the environment, with a .env file as
// fallback when present.
func Load() Config {
	_ = godotenv.Load()

	home, _ := os.UserHomeDir()
	sessionFile := home + string(os.PathSeparator) + ".govsecure_session"

	return Config{
		AppName:     "GovSecure AI Platform",
		Version:     "1.0.0",
		Environment: getenv("ENVIRONMENT", "development"),
		Debug:       getenv("DEBUG", "false") == "true",
		Port:        getenv("PORT", "8000"),
		JWTSecret:   getenv("JWT_SECRET", "dev-secret-change-in-production"),
		AI: AI{
			Provider:    getenv("AI_PROVIDER", "openai"),
			OpenAIKey:   getenv("OPENAI_API_KEY", ""),
			ClaudeKey:   getenv("CLAUDE_API_KEY", ""),
			Model:       getenv("AI_MODEL", ""), // empty selects the provider's default
			Temperature: getenvFloat("AI_TEMPERATURE", 0.7),
			MaxTokens:   getenvInt("AI_MAX_TOKENS", 4096),
		},
		ComplianceLevel: getenv("COMPLIANCE_LEVEL", "FEDRAMP_HIGH"),
		ExportDir:       getenv("EXPORT_DIR", "exports"),
		SessionFile:     getenv("SESSION_FILE", sessionFile),
	}
}

// IsDevelopment reports whether the platform runs in development mode.
func (c Config) IsDevelopment() bool { return c.Environment == "development" }

// IsProduction reports whether the platform runs in production mode.
func (c Config) IsProduction() bool { return c.Environment == "production" }
