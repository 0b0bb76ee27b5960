package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "BTCZAR", cfg.Engine.Pair)
	assert.Equal(t, 5, cfg.Engine.RecentTradesWindow)
	assert.Equal(t, int64(1370000000002671000), cfg.Engine.SequenceStart)
	assert.False(t, cfg.Engine.SeedBook)
	assert.Equal(t, "INFO", cfg.Logger.Level)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Pebble.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Same(t, cfg, Get())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("ENGINE_PAIR", "ETHUSD")
	t.Setenv("ENGINE_RECENT_TRADES_WINDOW", "10")
	t.Setenv("ENGINE_SEED_BOOK", "true")
	t.Setenv("ENGINE_PUBLISH_TIMEOUT", "750ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "ETHUSD", cfg.Engine.Pair)
	assert.Equal(t, 10, cfg.Engine.RecentTradesWindow)
	assert.True(t, cfg.Engine.SeedBook)
	assert.Equal(t, 750*time.Millisecond, cfg.Engine.PublishTimeout)
	assert.Equal(t, "DEBUG", cfg.Logger.Level)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoadYAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: "7000"
engine:
  pair: LTCUSD
  recent_trades_window: 3
  trade_history_size: 50
pebble:
  enabled: true
  path: /tmp/archive
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Server.Port, "env wins over file")
	assert.Equal(t, "LTCUSD", cfg.Engine.Pair)
	assert.Equal(t, 3, cfg.Engine.RecentTradesWindow)
	assert.Equal(t, 50, cfg.Engine.TradeHistorySize)
	assert.True(t, cfg.Pebble.Enabled)
	assert.Equal(t, "/tmp/archive", cfg.Pebble.Path)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "unset keys keep defaults")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"empty pair", func(c *Config) { c.Engine.Pair = "" }},
		{"zero window", func(c *Config) { c.Engine.RecentTradesWindow = 0 }},
		{"history below window", func(c *Config) { c.Engine.TradeHistorySize = 2 }},
		{"negative sequence", func(c *Config) { c.Engine.SequenceStart = -1 }},
		{"zero publish buffer", func(c *Config) { c.Engine.PublishBuffer = 0 }},
		{"bad log level", func(c *Config) { c.Logger.Level = "TRACE" }},
		{"pebble without path", func(c *Config) { c.Pebble.Enabled = true; c.Pebble.Path = "" }},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }},
	}

	require.NoError(t, Defaults().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
