// Package config loads runtime configuration from a .env file and
// environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the commands need from the environment.
type Config struct {
	// GitHubToken is optional; requests run unauthenticated without it,
	// at GitHub's lower rate ceiling.
	GitHubToken string
	// AnthropicAPIKey is required by the chat command only.
	AnthropicAPIKey string
	// AnthropicModel overrides the default chat model when set.
	AnthropicModel string
	// HTTPTimeout applies to every GitHub request.
	HTTPTimeout time.Duration
	// LogLevel is the logrus level name, default warn.
	LogLevel string
}

// Load reads .env if present, then the environment.
func Load() *Config {
	// Missing .env is the normal case; plain env vars still apply.
	_ = godotenv.Load()

	return &Config{
		GitHubToken:     os.Getenv("GITHUB_TOKEN"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
		HTTPTimeout:     time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		LogLevel:        getEnv("LOG_LEVEL", "warn"),
	}
}

// NewLogger builds the process logger from the configured level; verbose
// forces debug.
func (c *Config) NewLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
