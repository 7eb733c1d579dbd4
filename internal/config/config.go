package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is populated from environment variables (and .env in development).
type Config struct {
	App   AppConfig
	Redis RedisConfig
	Queue QueueConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host      string
	Password  string
	DB        int
	KeyPrefix string
	CacheTTL  time.Duration
	PoolSize  int
}

type QueueConfig struct {
	Enabled            bool
	EventRetentionDays int
	CleanupCron        string
	Concurrency        int
	HealthPort         string
}

// Load reads the application config from the environment.
func Load() (*Config, error) {
	cacheTTL, err := time.ParseDuration(getEnv("REDIS_CACHE_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_CACHE_TTL: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Clinic Scheduling API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:      getEnv("REDIS_HOST", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "clinic:"),
			CacheTTL:  cacheTTL,
			PoolSize:  getEnvInt("REDIS_POOL_SIZE", 10),
		},
		Queue: QueueConfig{
			Enabled:            getEnvBool("QUEUE_ENABLED", true),
			EventRetentionDays: getEnvInt("EVENT_RETENTION_DAYS", 90),
			CleanupCron:        getEnv("EVENT_CLEANUP_CRON", "0 3 * * *"),
			Concurrency:        getEnvInt("WORKER_CONCURRENCY", 10),
			HealthPort:         getEnv("WORKER_HEALTH_PORT", "9999"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks values that would make the service misbehave.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if c.Queue.EventRetentionDays < 1 {
		return fmt.Errorf("EVENT_RETENTION_DAYS must be positive, got %d", c.Queue.EventRetentionDays)
	}
	if c.Queue.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive, got %d", c.Queue.Concurrency)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
