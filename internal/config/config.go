// internal/config/config.go
//
// Runtime settings for the server, read once from the environment in main
// (after godotenv has loaded any .env file) and passed down explicitly.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultSessionSecret = "dev_secret_change_me"

// Config describes all runtime settings for the server.
type Config struct {
	Env string // dev|stage|prod

	Log struct {
		Level  string // zerolog level name
		Format string // json|console
	}

	HTTP struct {
		Addr              string
		ReadHeaderTimeout time.Duration
		IdleTimeout       time.Duration
		HandlerTimeout    time.Duration
		ShutdownTimeout   time.Duration
		ClientOrigin      string
		PublicURL         string // advertised in share text; empty to omit
	}

	Words struct {
		File    string
		URL     string
		Retries int
		Backoff time.Duration
		Timeout time.Duration
	}

	Session struct {
		Secret string
		TTL    time.Duration
	}

	Daily struct {
		Salt string
	}
}

// LoadFromEnv reads and validates the configuration.
func LoadFromEnv() (Config, error) {
	var c Config

	c.Env = envString("APP_ENV", "dev")
	c.Log.Level = envString("LOG_LEVEL", "info")
	c.Log.Format = envString("LOG_FORMAT", "json")

	port := envString("PORT", "5175")
	c.HTTP.Addr = envString("HTTP_ADDR", ":"+port)
	c.HTTP.ReadHeaderTimeout = envDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second)
	c.HTTP.IdleTimeout = envDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	c.HTTP.HandlerTimeout = envDuration("HTTP_HANDLER_TIMEOUT", 10*time.Second)
	c.HTTP.ShutdownTimeout = envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)
	c.HTTP.ClientOrigin = envString("CLIENT_ORIGIN", "http://localhost:5173")
	c.HTTP.PublicURL = envString("PUBLIC_URL", "")

	c.Words.File = envString("WORDS_FILE", "")
	c.Words.URL = envString("WORDS_URL", "")
	c.Words.Retries = envInt("WORDS_RETRIES", 2)
	c.Words.Backoff = envDuration("WORDS_BACKOFF", 500*time.Millisecond)
	c.Words.Timeout = envDuration("WORDS_TIMEOUT", 10*time.Second)

	c.Session.Secret = envString("SESSION_SECRET", defaultSessionSecret)
	c.Session.TTL = envDuration("SESSION_TTL", 24*time.Hour)

	c.Daily.Salt = envString("DAILY_SALT", "local_dev_salt")

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("HTTP addr is empty")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want json|console)", c.Log.Format)
	}
	if c.Words.File != "" && c.Words.URL != "" {
		return errors.New("set only one of WORDS_FILE and WORDS_URL")
	}
	if c.Words.Retries < 0 {
		return fmt.Errorf("WORDS_RETRIES must be >= 0, got %d", c.Words.Retries)
	}
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET is empty")
	}
	if c.Env != "dev" && c.Session.Secret == defaultSessionSecret {
		return fmt.Errorf("refuse to run with default SESSION_SECRET in %s", c.Env)
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
