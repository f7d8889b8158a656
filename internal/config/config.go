// internal/config/config.go

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Storage     StorageConfig
	Ingest      IngestConfig
	Report      ReportConfig
	Sources     SourcesConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Path string
}

// IngestConfig holds ingestion pipeline configuration
type IngestConfig struct {
	MockMode     bool
	MockCount    int
	DefaultDays  int
	FetchLimit   int
	KeywordsPath string
}

// ReportConfig holds report generation configuration
type ReportConfig struct {
	Dir string
}

// SourcesConfig holds source connector credentials and settings.
// A missing credential disables its connector; it never fails a run.
type SourcesConfig struct {
	Geo                string
	XBearerToken       string
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Storage: StorageConfig{
			Path: getEnv("DB_PATH", "data/db.sqlite3"),
		},
		Ingest: IngestConfig{
			MockMode:     getEnvAsBool("MOCK_MODE", true),
			MockCount:    getEnvAsInt("MOCK_COUNT", 80),
			DefaultDays:  getEnvAsInt("INGEST_DEFAULT_DAYS", 7),
			FetchLimit:   getEnvAsInt("INGEST_FETCH_LIMIT", 200),
			KeywordsPath: getEnv("KEYWORDS_PATH", "config/keywords.yaml"),
		},
		Report: ReportConfig{
			Dir: getEnv("REPORTS_DIR", "reports"),
		},
		Sources: SourcesConfig{
			Geo:                getEnv("GEO", "IN"),
			XBearerToken:       getEnv("X_BEARER_TOKEN", ""),
			RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
			RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "trendwatch/1.0"),
		},
	}

	return config, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
