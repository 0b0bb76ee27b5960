package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Engine   EngineConfig   `yaml:"engine"`
	Logger   LoggerConfig   `yaml:"logger"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Pebble   PebbleConfig   `yaml:"pebble"`
	Kafka    KafkaConfig    `yaml:"kafka"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// EngineConfig holds matching engine configuration
type EngineConfig struct {
	Pair               string        `yaml:"pair"`
	RecentTradesWindow int           `yaml:"recent_trades_window"`
	TradeHistorySize   int           `yaml:"trade_history_size"`
	SequenceStart      int64         `yaml:"sequence_start"`
	SeedBook           bool          `yaml:"seed_book"`
	PublishBuffer      int           `yaml:"publish_buffer"`
	PublishTimeout     time.Duration `yaml:"publish_timeout"`
	TradeLogPath       string        `yaml:"trade_log_path"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `yaml:"level"` // DEBUG, INFO, WARN, ERROR
	FilePath   string `yaml:"file_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// RedisConfig holds Redis trade mirror and book cache configuration
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	TLSEnabled   bool          `yaml:"tls_enabled"`
	BookTTL      time.Duration `yaml:"book_ttl"`
	MaxTrades    int           `yaml:"max_trades"`
}

// DatabaseConfig holds PostgreSQL trade audit configuration
type DatabaseConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	MaxConns        int           `yaml:"max_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	SSLMode         string        `yaml:"ssl_mode"`
}

// PebbleConfig holds the local trade archive configuration
type PebbleConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// KafkaConfig holds the trade event producer configuration
type KafkaConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Brokers      []string      `yaml:"brokers"`
	Topic        string        `yaml:"topic"`
	BatchTimeout time.Duration `yaml:"batch_timeout"`
}

var instance *Config

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Engine: EngineConfig{
			Pair:               "BTCZAR",
			RecentTradesWindow: 5,
			TradeHistorySize:   1000,
			SequenceStart:      1370000000002671000,
			SeedBook:           false,
			PublishBuffer:      1024,
			PublishTimeout:     3 * time.Second,
			TradeLogPath:       "trades.log",
		},
		Logger: LoggerConfig{
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         6379,
			MaxRetries:   3,
			PoolSize:     10,
			MinIdleConns: 2,
			BookTTL:      5 * time.Minute,
			MaxTrades:    10000,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Name:            "orderbook",
			User:            "postgres",
			MaxConns:        20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			SSLMode:         "disable",
		},
		Pebble: PebbleConfig{
			Path: "data/trades",
		},
		Kafka: KafkaConfig{
			Brokers:      []string{"localhost:9092"},
			Topic:        "orderbook.trades",
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Load loads configuration from .env file (if exists), an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing order of precedence
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	instance = cfg
	return cfg, nil
}

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not loaded - call config.Load() first")
	}
	return instance
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	s := &cfg.Server
	s.Port = getEnv("PORT", s.Port)
	s.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", s.ReadTimeout)
	s.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", s.WriteTimeout)
	s.IdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", s.IdleTimeout)
	s.ShutdownTimeout = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", s.ShutdownTimeout)
	s.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", s.AllowedOrigins)

	e := &cfg.Engine
	e.Pair = getEnv("ENGINE_PAIR", e.Pair)
	e.RecentTradesWindow = getEnvInt("ENGINE_RECENT_TRADES_WINDOW", e.RecentTradesWindow)
	e.TradeHistorySize = getEnvInt("ENGINE_TRADE_HISTORY_SIZE", e.TradeHistorySize)
	e.SequenceStart = getEnvInt64("ENGINE_SEQUENCE_START", e.SequenceStart)
	e.SeedBook = getEnvBool("ENGINE_SEED_BOOK", e.SeedBook)
	e.PublishBuffer = getEnvInt("ENGINE_PUBLISH_BUFFER", e.PublishBuffer)
	e.PublishTimeout = getEnvDuration("ENGINE_PUBLISH_TIMEOUT", e.PublishTimeout)
	e.TradeLogPath = getEnv("TRADE_LOG_PATH", e.TradeLogPath)

	l := &cfg.Logger
	l.Level = strings.ToUpper(getEnv("LOG_LEVEL", l.Level))
	l.FilePath = getEnv("LOG_FILE", l.FilePath)
	l.MaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", l.MaxSizeMB)
	l.MaxBackups = getEnvInt("LOG_MAX_BACKUPS", l.MaxBackups)
	l.MaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", l.MaxAgeDays)
	l.Compress = getEnvBool("LOG_COMPRESS", l.Compress)

	r := &cfg.Redis
	r.Enabled = getEnvBool("REDIS_ENABLED", r.Enabled)
	r.Host = getEnv("REDIS_HOST", r.Host)
	r.Port = getEnvInt("REDIS_PORT", r.Port)
	r.Password = getEnv("REDIS_PASSWORD", r.Password)
	r.DB = getEnvInt("REDIS_DB", r.DB)
	r.MaxRetries = getEnvInt("REDIS_MAX_RETRIES", r.MaxRetries)
	r.PoolSize = getEnvInt("REDIS_POOL_SIZE", r.PoolSize)
	r.MinIdleConns = getEnvInt("REDIS_MIN_IDLE_CONNS", r.MinIdleConns)
	r.TLSEnabled = getEnvBool("REDIS_TLS_ENABLED", r.TLSEnabled)
	r.BookTTL = getEnvDuration("REDIS_BOOK_TTL", r.BookTTL)
	r.MaxTrades = getEnvInt("REDIS_MAX_TRADES", r.MaxTrades)

	d := &cfg.Database
	d.Enabled = getEnvBool("DATABASE_ENABLED", d.Enabled)
	d.Host = getEnv("DATABASE_HOST", d.Host)
	d.Port = getEnvInt("DATABASE_PORT", d.Port)
	d.Name = getEnv("DATABASE_NAME", d.Name)
	d.User = getEnv("DATABASE_USER", d.User)
	d.Password = getEnv("DATABASE_PASSWORD", d.Password)
	d.MaxConns = getEnvInt("DATABASE_MAX_CONNECTIONS", d.MaxConns)
	d.MaxIdleConns = getEnvInt("DATABASE_MAX_IDLE_CONNECTIONS", d.MaxIdleConns)
	d.ConnMaxLifetime = getEnvDuration("DATABASE_CONN_MAX_LIFETIME", d.ConnMaxLifetime)
	d.SSLMode = getEnv("DATABASE_SSL_MODE", d.SSLMode)

	p := &cfg.Pebble
	p.Enabled = getEnvBool("PEBBLE_ENABLED", p.Enabled)
	p.Path = getEnv("PEBBLE_PATH", p.Path)

	k := &cfg.Kafka
	k.Enabled = getEnvBool("KAFKA_ENABLED", k.Enabled)
	k.Brokers = getEnvList("KAFKA_BROKERS", k.Brokers)
	k.Topic = getEnv("KAFKA_TOPIC", k.Topic)
	k.BatchTimeout = getEnvDuration("KAFKA_BATCH_TIMEOUT", k.BatchTimeout)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	// Validate engine config
	if c.Engine.Pair == "" {
		return fmt.Errorf("ENGINE_PAIR cannot be empty")
	}
	if c.Engine.RecentTradesWindow < 1 {
		return fmt.Errorf("ENGINE_RECENT_TRADES_WINDOW must be > 0")
	}
	if c.Engine.TradeHistorySize < c.Engine.RecentTradesWindow {
		return fmt.Errorf("ENGINE_TRADE_HISTORY_SIZE must be >= ENGINE_RECENT_TRADES_WINDOW")
	}
	if c.Engine.SequenceStart < 0 {
		return fmt.Errorf("ENGINE_SEQUENCE_START must be >= 0")
	}
	if c.Engine.PublishBuffer < 1 {
		return fmt.Errorf("ENGINE_PUBLISH_BUFFER must be > 0")
	}

	// Validate logger config
	validLevels := map[string]bool{"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: DEBUG, INFO, WARN, ERROR")
	}

	// Validate sinks
	if c.Redis.Enabled && c.Redis.MaxTrades < 1 {
		return fmt.Errorf("REDIS_MAX_TRADES must be > 0")
	}
	if c.Pebble.Enabled && c.Pebble.Path == "" {
		return fmt.Errorf("PEBBLE_PATH cannot be empty when pebble is enabled")
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("KAFKA_BROKERS and KAFKA_TOPIC are required when kafka is enabled")
	}

	return nil
}

// Helper functions to read environment variables with defaults

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
