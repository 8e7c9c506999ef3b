package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// GitHub-backed store configuration
	GitHub GitHubConfig

	// Local store configuration
	Store StoreConfig

	// Admin session configuration
	Admin AdminConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// GitHubConfig holds the remote file store target and credential
type GitHubConfig struct {
	APIBaseURL   string
	Token        string
	Repo         string
	Path         string
	Branch       string
	FetchTimeout time.Duration
	PutTimeout   time.Duration
}

// StoreConfig holds local persistence and cache settings
type StoreConfig struct {
	LocalCSV string
	CacheTTL time.Duration
}

// AdminConfig holds the admin gate settings
type AdminConfig struct {
	Password   string
	SessionTTL time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments use the process environment.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		GitHub: GitHubConfig{
			APIBaseURL:   getEnv("GITHUB_API_URL", "https://api.github.com"),
			Token:        strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
			Repo:         strings.TrimSpace(os.Getenv("GITHUB_REPO")),
			Path:         getEnv("GITHUB_PATH", "editions.csv"),
			Branch:       getEnv("GITHUB_BRANCH", "main"),
			FetchTimeout: getDurationEnv("GITHUB_FETCH_TIMEOUT", 20*time.Second),
			PutTimeout:   getDurationEnv("GITHUB_PUT_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			LocalCSV: getEnv("LOCAL_CSV", "editions.csv"),
			CacheTTL: getDurationEnv("CACHE_TTL", 30*time.Second),
		},
		Admin: AdminConfig{
			Password:   strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
			SessionTTL: getDurationEnv("SESSION_TTL", 30*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Configured reports whether the remote store has both a target and a
// credential. Anything less silently falls back to the local file.
func (c *GitHubConfig) Configured() bool {
	return c.Repo != "" && c.Token != ""
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
