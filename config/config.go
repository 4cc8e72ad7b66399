// Package config loads and validates the service configuration and the
// deployment secrets it depends on. A single Config is constructed in the
// entry point and passed explicitly to every component that needs it.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`

		TLS      bool   `mapstructure:"tls"`
		CertFile string `mapstructure:"cert_file"`
		KeyFile  string `mapstructure:"key_file"`

		// ShutdownTimeout bounds the graceful stop window once a
		// termination signal has been received.
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

		AllowedOrigins []string `mapstructure:"allowed_origins"`

		RateLimit struct {
			RequestsPerSecond int `mapstructure:"requests_per_second"`
			Burst             int `mapstructure:"burst"`
		} `mapstructure:"rate_limit"`
	} `mapstructure:"server"`

	Database struct {
		// SecretsVolume is the directory the orchestrator mounts the
		// Cosmos secrets into, one value per file.
		SecretsVolume string `mapstructure:"secrets_volume"`

		// InMemory bypasses the secret volume and Cosmos entirely and
		// serves the fixture catalog. Local development only.
		InMemory bool `mapstructure:"in_memory"`

		MaxPoolSize  uint64 `mapstructure:"max_pool_size"`
		QueryTimeout int    `mapstructure:"query_timeout"` // seconds
		CacheSize    int    `mapstructure:"cache_size"`
	} `mapstructure:"database"`
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.tls", false)
	viper.SetDefault("server.cert_file", "server.crt")
	viper.SetDefault("server.key_file", "server.key")
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.allowed_origins", []string{})
	viper.SetDefault("server.rate_limit.requests_per_second", 100)
	viper.SetDefault("server.rate_limit.burst", 100)

	viper.SetDefault("database.secrets_volume", "/app/secrets")
	viper.SetDefault("database.in_memory", false)
	viper.SetDefault("database.max_pool_size", 10)
	viper.SetDefault("database.query_timeout", 10)
	viper.SetDefault("database.cache_size", 1024)
}

// loadFromEnv sets up environment variable loading.
func loadFromEnv() {
	viper.SetEnvPrefix("NGSA")
	viper.AutomaticEnv()

	// Explicit bindings for the switches operators set most often.
	_ = viper.BindEnv("server.port", "NGSA_PORT")
	_ = viper.BindEnv("database.secrets_volume", "NGSA_SECRETS_VOLUME")
	_ = viper.BindEnv("database.in_memory", "NGSA_IN_MEMORY")
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()
	loadFromEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, will use defaults and env vars
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration for correctness.
func validateConfig(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", config.Server.Port)
	}
	if config.Server.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if config.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown_timeout must be positive, got %v", config.Server.ShutdownTimeout)
	}
	if config.Server.TLS {
		if config.Server.CertFile == "" || config.Server.KeyFile == "" {
			return fmt.Errorf("server.cert_file and server.key_file are required when TLS is enabled")
		}
	}
	if config.Server.RateLimit.RequestsPerSecond < 1 {
		return fmt.Errorf("server.rate_limit.requests_per_second must be positive, got %d", config.Server.RateLimit.RequestsPerSecond)
	}
	if config.Server.RateLimit.Burst < 1 {
		return fmt.Errorf("server.rate_limit.burst must be positive, got %d", config.Server.RateLimit.Burst)
	}

	if config.Database.MaxPoolSize < 1 {
		return fmt.Errorf("database.max_pool_size must be positive, got %d", config.Database.MaxPoolSize)
	}
	if config.Database.QueryTimeout < 1 {
		return fmt.Errorf("database.query_timeout must be positive, got %d", config.Database.QueryTimeout)
	}
	if config.Database.CacheSize < 1 {
		return fmt.Errorf("database.cache_size must be positive, got %d", config.Database.CacheSize)
	}

	return nil
}

// QueryTimeout returns the per-query timeout as a duration.
func (c *Config) QueryTimeout() time.Duration {
	if c.Database.QueryTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Database.QueryTimeout) * time.Second
}
