// ABOUTME: Runtime configuration loaded from the environment and an optional .env file
// ABOUTME: Resolves database path, listen address, integration key, logging and Gmail settings
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// AppName names the XDG data directory.
const AppName = "boxcrm"

// DefaultGmailQuery selects the messages imported as email leads.
const DefaultGmailQuery = "in:inbox label:leads"

type Config struct {
	DBPath string
	Addr   string

	// IntegrationAPIKey guards the external intake endpoints when set.
	IntegrationAPIKey string

	LogLevel  string
	LogFormat string

	GoogleClientID     string
	GoogleClientSecret string
	GmailQuery         string
	GmailWorkspaceID   string
}

// Load reads configuration, applying defaults for anything unset.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		DBPath:             getEnv("BOXCRM_DB_PATH", DefaultDBPath()),
		Addr:               getEnv("BOXCRM_ADDR", ":8080"),
		IntegrationAPIKey:  os.Getenv("INTEGRATION_API_KEY"),
		LogLevel:           getEnv("BOXCRM_LOG_LEVEL", "info"),
		LogFormat:          getEnv("BOXCRM_LOG_FORMAT", "text"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GmailQuery:         getEnv("BOXCRM_GMAIL_QUERY", DefaultGmailQuery),
		GmailWorkspaceID:   os.Getenv("BOXCRM_GMAIL_WORKSPACE"),
	}
}

// DefaultDBPath returns the XDG-compliant database location.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, AppName, AppName+".db")
}

// DataDir returns the XDG data directory for auxiliary files such as OAuth tokens.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
