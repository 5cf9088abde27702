package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Populated from environment variables (optionally via a .env file).
type Config struct {
	App        AppConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Federation FederationConfig
	Worker     WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// FederationConfig describes how this deployment is addressed on the network.
// Domain is the public host remote servers use to reach the actor; it is part
// of the actor URI and must not change once the blog has followers.
type FederationConfig struct {
	Domain   string
	Protocol string // https except for local development
	// Followers whose inbox failed this many consecutive deliveries are
	// dropped by the daily sweep.
	UnreachableThreshold int
}

type WorkerConfig struct {
	Concurrency   int
	DeliveryQueue string
	MaxRetry      int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Fedblog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		Federation: FederationConfig{
			Domain:               getEnv("FED_DOMAIN", "localhost:8080"),
			Protocol:             getEnv("FED_PROTOCOL", "http"),
			UnreachableThreshold: getEnvInt("FED_UNREACHABLE_THRESHOLD", 10),
		},
		Worker: WorkerConfig{
			Concurrency:   getEnvInt("WORKER_CONCURRENCY", 10),
			DeliveryQueue: getEnv("WORKER_DELIVERY_QUEUE", "high"),
			MaxRetry:      getEnvInt("WORKER_MAX_RETRY", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks production-critical settings.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Federation.Protocol != "https" {
			return fmt.Errorf("FED_PROTOCOL must be https in production")
		}
	}
	if c.Federation.Domain == "" {
		return fmt.Errorf("FED_DOMAIN must not be empty")
	}
	return nil
}

// BaseURL is the public origin of this deployment, e.g. https://blog.example.com
func (c *Config) BaseURL() string {
	return fmt.Sprintf("%s://%s", c.Federation.Protocol, c.Federation.Domain)
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
