package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	StateDir    string
	HTTPTimeout time.Duration
	SealSession bool
}

// Load reads configuration from the environment, with a .env file as a
// convenience for development setups.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		APIBaseURL:  getEnv("LEAVE_API_URL", "http://localhost:5000/api"),
		StateDir:    getEnv("LEAVE_STATE_DIR", defaultStateDir()),
		HTTPTimeout: getEnvDuration("LEAVE_HTTP_TIMEOUT", 15*time.Second),
		SealSession: getEnvBool("LEAVE_SESSION_SEALED", true),
	}
}

// defaultStateDir resolves the per-user config area. An empty result is
// fine: the session store degrades to its no-op implementation.
func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "leavectl")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("LEAVE_API_URL must be an absolute URL")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("LEAVE_HTTP_TIMEOUT must be positive")
	}
	return nil
}
