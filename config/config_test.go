package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfig returns a valid Config for testing
func newTestConfig() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Server.RateLimit.RequestsPerSecond = 100
	cfg.Server.RateLimit.Burst = 100
	cfg.Database.SecretsVolume = "/app/secrets"
	cfg.Database.MaxPoolSize = 10
	cfg.Database.QueryTimeout = 10
	cfg.Database.CacheSize = 1024
	return &cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Server.TLS)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/app/secrets", cfg.Database.SecretsVolume)
	assert.False(t, cfg.Database.InMemory)
	assert.Equal(t, uint64(10), cfg.Database.MaxPoolSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("NGSA_PORT", "9090")
	t.Setenv("NGSA_SECRETS_VOLUME", "/mnt/secrets")
	t.Setenv("NGSA_IN_MEMORY", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/mnt/secrets", cfg.Database.SecretsVolume)
	assert.True(t, cfg.Database.InMemory)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"empty host", func(c *Config) { c.Server.Host = "" }, "host cannot be empty"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "shutdown_timeout"},
		{"tls without certs", func(c *Config) { c.Server.TLS = true; c.Server.CertFile = "" }, "cert_file"},
		{"zero rate limit", func(c *Config) { c.Server.RateLimit.RequestsPerSecond = 0 }, "requests_per_second"},
		{"zero pool size", func(c *Config) { c.Database.MaxPoolSize = 0 }, "max_pool_size"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "query_timeout"},
		{"zero cache size", func(c *Config) { c.Database.CacheSize = 0 }, "cache_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQueryTimeout(t *testing.T) {
	cfg := newTestConfig()
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout())

	cfg.Database.QueryTimeout = 3
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout())

	cfg.Database.QueryTimeout = 0
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout())
}
