package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port    string
	AppName string

	// Backing store (one hosted collection id per dataset).
	// StreamsDBID may be empty: the streams feature is then disabled.
	NotionToken  string
	ProjectsDBID string
	RevenueDBID  string
	CostsDBID    string
	MetricsDBID  string
	StreamsDBID  string

	// Sync trigger
	CronSecret string

	// Platform credentials
	YouTubeAPIKey string
	GitHubToken   string // optional, raises the API rate limit

	// Development
	UseLocalData bool

	// Frontend
	FrontendURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envOrDefault("PORT", "3001"),
		AppName: envOrDefault("APP_NAME", "Build In Public"),

		NotionToken:  os.Getenv("NOTION_TOKEN"),
		ProjectsDBID: os.Getenv("NOTION_PROJECTS_DB_ID"),
		RevenueDBID:  os.Getenv("NOTION_REVENUE_DB_ID"),
		CostsDBID:    os.Getenv("NOTION_COSTS_DB_ID"),
		MetricsDBID:  os.Getenv("NOTION_METRICS_DB_ID"),
		StreamsDBID:  os.Getenv("NOTION_STREAMS_DB_ID"),

		CronSecret: os.Getenv("CRON_SECRET"),

		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),

		UseLocalData: envOrDefaultBool("USE_LOCAL_DATA", false),

		FrontendURL: envOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
