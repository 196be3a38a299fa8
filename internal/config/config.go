// Package config loads the application configuration from RBOOK_
// environment variables with sensible defaults. An optional .env file is
// loaded by the caller before FromEnv runs.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the top-level configuration.
type Config struct {
	BooksDir     string // directory scanned for books
	StateDir     string // positions, history, and the log file live here
	MaxChars     int    // characters per reading page
	ItemsPerPage int    // list rows per menu page
	HistorySize  int    // recent-books capacity
	RedisURL     string // non-empty switches position storage to Redis
	LogFile      string
	LogLevel     string
	LogPretty    bool
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() *Config {
	stateDir := getEnv("RBOOK_STATE_DIR", defaultStateDir())

	cfg := &Config{
		BooksDir:     getEnv("RBOOK_BOOKS_DIR", "."),
		StateDir:     stateDir,
		MaxChars:     parseInt(getEnv("RBOOK_MAX_CHARS", "512"), 512),
		ItemsPerPage: parseInt(getEnv("RBOOK_ITEMS_PER_PAGE", "10"), 10),
		HistorySize:  parseInt(getEnv("RBOOK_HISTORY_SIZE", "10"), 10),
		RedisURL:     getEnv("RBOOK_REDIS_URL", ""),
		LogFile:      getEnv("RBOOK_LOG_FILE", filepath.Join(stateDir, "rbook.log")),
		LogLevel:     getEnv("RBOOK_LOG_LEVEL", "info"),
		LogPretty:    parseBool(getEnv("RBOOK_LOG_PRETTY", "false")),
	}

	if cfg.MaxChars <= 0 {
		cfg.MaxChars = 512
	}
	if cfg.ItemsPerPage <= 0 {
		cfg.ItemsPerPage = 10
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 10
	}

	return cfg
}

// PositionsPath returns the file-store location for reading positions.
func (c *Config) PositionsPath() string {
	return filepath.Join(c.StateDir, "positions.json")
}

// HistoryPath returns the reading-history file location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.StateDir, "history.json")
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "rbook")
	}
	return ".rbook"
}

// Helpers

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
