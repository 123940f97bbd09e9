// Package config loads bot configuration from a YAML file with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Storage backend identifiers.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// TelegramConfig holds Telegram bot settings.
type TelegramConfig struct {
	Token string `yaml:"token" envconfig:"BOT_TOKEN"`
	// LongPollTimeoutSeconds defines the long polling timeout; 0 -> default.
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// PostgresConfig holds settings for the PostgreSQL conversation store.
type PostgresConfig struct {
	Host           string `yaml:"host" envconfig:"POSTGRES_HOST"`
	Port           string `yaml:"port" envconfig:"POSTGRES_PORT"`
	User           string `yaml:"user" envconfig:"POSTGRES_USER"`
	Password       string `yaml:"password" envconfig:"POSTGRES_PASSWORD"`
	Name           string `yaml:"name" envconfig:"POSTGRES_DB"`
	SSLMode        string `yaml:"ssl_mode" envconfig:"POSTGRES_SSL_MODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"POSTGRES_MAX_CONNECTIONS"`
}

// RedisConfig holds settings for the Redis conversation store.
type RedisConfig struct {
	Addr       string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password   string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB         int    `yaml:"db" envconfig:"REDIS_DB"`
	KeyPrefix  string `yaml:"key_prefix" envconfig:"REDIS_KEY_PREFIX"`
	TTLSeconds int    `yaml:"ttl_seconds" envconfig:"REDIS_TTL_SECONDS"`
}

// StorageConfig selects and configures the conversation state store.
type StorageConfig struct {
	Backend  string         `yaml:"backend" envconfig:"STORAGE_BACKEND"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// Config aggregates all bot configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if cfg.Telegram.LongPollTimeoutSeconds < 0 {
		return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if backend == "" {
		backend = BackendMemory
	}
	switch backend {
	case BackendMemory:
	case BackendPostgres:
		pg := &cfg.Storage.Postgres
		if pg.Host == "" || pg.User == "" || pg.Name == "" {
			return fmt.Errorf("storage.postgres requires host, user and name when storage.backend is 'postgres'")
		}
		if pg.Port == "" {
			pg.Port = "5432"
		}
		if pg.SSLMode == "" {
			pg.SSLMode = "disable"
		}
		if pg.MaxConnections <= 0 {
			pg.MaxConnections = 4
		}
	case BackendRedis:
		if strings.TrimSpace(cfg.Storage.Redis.Addr) == "" {
			return fmt.Errorf("storage.redis.addr is required when storage.backend is 'redis'")
		}
		if cfg.Storage.Redis.TTLSeconds < 0 {
			return fmt.Errorf("storage.redis.ttl_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid storage.backend %q; allowed: memory, postgres, redis", cfg.Storage.Backend)
	}
	cfg.Storage.Backend = backend

	return nil
}
