/*
config.go - Process configuration

PURPOSE:
  Reads server settings from environment variables. Command-line flags in
  cmd/server override whatever is loaded here.

ENVIRONMENT:
  SHIFTRATES_ENV            development | production (default: development)
  SHIFTRATES_HTTP_BIND      Listen address (default: 0.0.0.0)
  SHIFTRATES_HTTP_PORT      Listen port, falls back to PORT (default: 5000)
  SHIFTRATES_DB_PATH        SQLite path, ":memory:" allowed (default: shiftrates.db)
  SHIFTRATES_CACHE_SIZE     Cached calculation results (default: 1024, 0 disables)
  SHIFTRATES_CORS_ORIGINS   Comma-separated allowed origins
  SHIFTRATES_HISTORY_LIMIT  Default page size for GET /api/calculations (default: 50)
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment  string
	HTTPBind     string
	HTTPPort     int
	DBPath       string
	CacheSize    int
	CORSOrigins  []string
	HistoryLimit int
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:  getEnv("SHIFTRATES_ENV", "development"),
		HTTPBind:     getEnv("SHIFTRATES_HTTP_BIND", "0.0.0.0"),
		HTTPPort:     getEnvIntAny([]string{"SHIFTRATES_HTTP_PORT", "PORT"}, 5000),
		DBPath:       getEnv("SHIFTRATES_DB_PATH", "shiftrates.db"),
		CacheSize:    getEnvIntAny([]string{"SHIFTRATES_CACHE_SIZE"}, 1024),
		CORSOrigins:  splitList(getEnv("SHIFTRATES_CORS_ORIGINS", "http://localhost:5173,http://localhost:8080")),
		HistoryLimit: getEnvIntAny([]string{"SHIFTRATES_HISTORY_LIMIT"}, 50),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTPPort)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.HistoryLimit)
	}
	return nil
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPBind, c.HTTPPort)
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvIntAny returns the first set integer environment variable value from keys, or def.
func getEnvIntAny(keys []string, def int) int {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				return parsed
			}
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
