package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultObservabilityConfig(t *testing.T) {
	cfg := DefaultObservabilityConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "spendly", cfg.ServiceName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 100*time.Millisecond, cfg.Logging.SlowQueryThreshold)
	assert.Empty(t, cfg.NewRelic.LicenseKey)
	assert.Contains(t, cfg.HealthChecks.Checks, "database")
	assert.Contains(t, cfg.HealthChecks.Checks, "redis")
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ObservabilityConfig)
		wantErr string
	}{
		{"valid defaults", func(c *ObservabilityConfig) {}, ""},
		{"missing service name", func(c *ObservabilityConfig) { c.ServiceName = "" }, "service_name is required"},
		{"bad level", func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, "invalid logging level"},
		{"negative threshold", func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -1 }, "must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultObservabilityConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestGetLogLevelDefaultsByEnvironment(t *testing.T) {
	cfg := &ObservabilityConfig{Environment: "production"}
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg = &ObservabilityConfig{Environment: "development"}
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg = &ObservabilityConfig{Environment: "production", Logging: LoggingConfig{Level: "warn"}}
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&ObservabilityConfig{Environment: "production"}).IsProduction())
	assert.False(t, (&ObservabilityConfig{Environment: "local"}).IsProduction())
}
