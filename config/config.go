// Package config loads console settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the console needs at startup.
type Config struct {
	APIURL      string // base URL of the Doc.Roaster REST API
	ListenAddr  string
	DataDir     string // holds the session database
	LogLevel    string
	Environment string
}

// Load reads configuration from a .env file (when present) and the
// process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		APIURL:      getEnvWithDefault("API_URL", "http://localhost:8000/api/v1"),
		ListenAddr:  getEnvWithDefault("LISTEN_ADDR", ":8080"),
		DataDir:     getEnvWithDefault("DATA_DIR", "./data"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "INFO"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API_URL must not be empty")
	}
	return cfg, nil
}

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
