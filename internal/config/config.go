package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	Server    ServerConfig
	Chat      ChatConfig
	Session   SessionConfig
	Redis     RedisConfig
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// ServerConfig is read from SERVER_* variables.
// RateLimit and SessionLimit count chat requests and new sessions per minute per IP.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	RateLimit       int           `envconfig:"RATE_LIMIT" default:"60"`
	SessionLimit    int           `envconfig:"SESSION_LIMIT" default:"20"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// ChatConfig is read from CHAT_* variables
type ChatConfig struct {
	ThinkingDelay   time.Duration `envconfig:"THINKING_DELAY" default:"1500ms"`
	UpstreamURL     string        `envconfig:"UPSTREAM_URL"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
}

// SessionConfig is read from SESSION_* variables. TTL is the snapshot lifetime
// after the last save; resident sessions unused for IdleTimeout are evicted.
type SessionConfig struct {
	TTL           time.Duration `envconfig:"TTL" default:"24h"`
	IdleTimeout   time.Duration `envconfig:"IDLE_TIMEOUT" default:"30m"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
}

// RedisConfig is read from REDIS_* variables. An empty address keeps sessions in memory.
type RedisConfig struct {
	Addr string `envconfig:"ADDR"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("SERVER_RATE_LIMIT must be positive, got %d", c.Server.RateLimit)
	}

	if c.Server.SessionLimit <= 0 {
		return fmt.Errorf("SERVER_SESSION_LIMIT must be positive, got %d", c.Server.SessionLimit)
	}

	if c.Chat.ThinkingDelay < 0 {
		return fmt.Errorf("CHAT_THINKING_DELAY must not be negative")
	}

	// a chat reply has to fit inside the response write deadline
	budget := c.Chat.ThinkingDelay
	if c.Chat.UpstreamURL != "" {
		if c.Chat.UpstreamTimeout <= 0 {
			return fmt.Errorf("CHAT_UPSTREAM_TIMEOUT must be positive when CHAT_UPSTREAM_URL is set")
		}
		budget += c.Chat.UpstreamTimeout
	}
	if c.Server.WriteTimeout > 0 && budget >= c.Server.WriteTimeout {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT (%s) must exceed the chat reply budget (%s)", c.Server.WriteTimeout, budget)
	}

	if c.Session.TTL <= 0 || c.Session.IdleTimeout <= 0 || c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_TTL, SESSION_IDLE_TIMEOUT and SESSION_SWEEP_INTERVAL must be positive")
	}

	if c.Session.IdleTimeout >= c.Session.TTL {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT (%s) must be shorter than SESSION_TTL (%s)", c.Session.IdleTimeout, c.Session.TTL)
	}

	if c.Chat.UpstreamURL != "" {
		u, err := url.Parse(c.Chat.UpstreamURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("CHAT_UPSTREAM_URL must be an absolute http(s) URL: %q", c.Chat.UpstreamURL)
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.LogFormat)
	}

	return nil
}

// IsProduction returns true when the application runs in production
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
