package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"devhub-mcp/internal/confluence"
	"devhub-mcp/internal/jira"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
// The Jira tracker is mandatory; GitHub and Confluence are optional
// capabilities and stay unconfigured when their settings are absent.
type AppConfig struct {
	Jira        jira.Config
	GitHubToken string
	GitHubOwner string
	GitHubRepo  string
	Confluence  confluence.Config
	DataPath    string
	LogDir      string
}

// HasGitHub reports whether the source-control capability is configured.
func (c *AppConfig) HasGitHub() bool {
	return c.GitHubToken != ""
}

// HasConfluence reports whether the wiki-publisher capability is configured.
func (c *AppConfig) HasConfluence() bool {
	return c.Confluence.BaseURL != ""
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	delaySecs, _ := strconv.Atoi(getEnv("JIRA_REQUEST_DELAY_SECONDS", "2"))

	cfg := &AppConfig{
		Jira: jira.Config{
			BaseURL:      getEnv("JIRA_URL", ""),
			Email:        getEnv("JIRA_EMAIL", ""),
			APIToken:     getEnv("JIRA_API_TOKEN", ""),
			Token:        getEnv("JIRA_PAT", ""),
			RequestDelay: time.Duration(delaySecs) * time.Second,
		},
		GitHubToken: getEnv("GITHUB_TOKEN", ""),
		GitHubOwner: getEnv("GITHUB_OWNER", ""),
		GitHubRepo:  getEnv("GITHUB_REPO", ""),
		Confluence: confluence.Config{
			BaseURL:  getEnv("CONFLUENCE_URL", ""),
			Email:    getEnv("CONFLUENCE_EMAIL", getEnv("JIRA_EMAIL", "")),
			APIToken: getEnv("CONFLUENCE_API_TOKEN", getEnv("JIRA_API_TOKEN", "")),
		},
		DataPath: dataPath,
		LogDir:   logDir,
	}

	// The issue tracker is the primary data source; refusing to start without
	// it keeps every tool from failing on its first fetch instead.
	if cfg.Jira.BaseURL == "" {
		return nil, fmt.Errorf("JIRA_URL is not set; the Jira data source is required")
	}
	if cfg.Jira.Token == "" && (cfg.Jira.Email == "" || cfg.Jira.APIToken == "") {
		return nil, fmt.Errorf("missing Jira credentials: set JIRA_PAT or both JIRA_EMAIL and JIRA_API_TOKEN")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
