package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, cfg.Server.Host+":8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 60, cfg.Server.RateLimit)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 1500*time.Millisecond, cfg.Chat.ThinkingDelay)
	assert.Empty(t, cfg.Chat.UpstreamURL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 10*time.Second, cfg.Chat.UpstreamTimeout)
	assert.Equal(t, 20, cfg.Server.SessionLimit)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://sawitpro.com,https://palmpal.app")
	t.Setenv("CHAT_THINKING_DELAY", "0s")
	t.Setenv("CHAT_UPSTREAM_URL", "http://localhost:5000/chat")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://sawitpro.com", "https://palmpal.app"}, cfg.Server.AllowedOrigins)
	assert.Zero(t, cfg.Chat.ThinkingDelay)
	assert.Equal(t, "http://localhost:5000/chat", cfg.Chat.UpstreamURL)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"bad duration", "CHAT_THINKING_DELAY", "soon"},
		{"negative delay", "CHAT_THINKING_DELAY", "-1s"},
		{"relative upstream", "CHAT_UPSTREAM_URL", "/chat"},
		{"zero rate limit", "SERVER_RATE_LIMIT", "0"},
		{"zero session limit", "SERVER_SESSION_LIMIT", "0"},
		{"delay beyond write timeout", "CHAT_THINKING_DELAY", "20s"},
		{"zero session ttl", "SESSION_TTL", "0s"},
		{"idle timeout beyond ttl", "SESSION_IDLE_TIMEOUT", "48h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_ChatReplyFitsWriteTimeout(t *testing.T) {
	tests := []struct {
		name            string
		writeTimeout    time.Duration
		thinkingDelay   time.Duration
		upstreamURL     string
		upstreamTimeout time.Duration
		wantErr         bool
	}{
		{"canned replies", 15 * time.Second, 1500 * time.Millisecond, "", 30 * time.Second, false},
		{"upstream within budget", 15 * time.Second, 1500 * time.Millisecond, "http://localhost:5000/chat", 10 * time.Second, false},
		{"upstream beyond write timeout", 15 * time.Second, 1500 * time.Millisecond, "http://localhost:5000/chat", 30 * time.Second, true},
		{"budget equal to write timeout", 15 * time.Second, 5 * time.Second, "http://localhost:5000/chat", 10 * time.Second, true},
		{"upstream without timeout", 15 * time.Second, 0, "http://localhost:5000/chat", 0, true},
		{"no write timeout", 0, 1500 * time.Millisecond, "http://localhost:5000/chat", 30 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			cfg.Server.WriteTimeout = tt.writeTimeout
			cfg.Chat.ThinkingDelay = tt.thinkingDelay
			cfg.Chat.UpstreamURL = tt.upstreamURL
			cfg.Chat.UpstreamTimeout = tt.upstreamTimeout

			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
