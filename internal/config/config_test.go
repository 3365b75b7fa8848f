package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		hostname string
		want     Environment
	}{
		{"explicit override wins", "sandbox", "api.voxxypresents.com", EnvSandbox},
		{"bogus override falls through", "nonsense", "localhost", EnvDevelopment},
		{"localhost", "", "localhost", EnvDevelopment},
		{"loopback", "", "127.0.0.1", EnvDevelopment},
		{"staging host", "", "api-staging.voxxypresents.com", EnvStaging},
		{"dev host", "", "devbox-4", EnvStaging},
		{"sandbox host", "", "sandbox-api", EnvSandbox},
		{"experimental host", "", "experimental.voxxypresents.com", EnvSandbox},
		{"unknown host defaults to production", "", "api.voxxypresents.com", EnvProduction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectEnvironment(tt.explicit, tt.hostname))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg := Load()
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, SourceMemory, cfg.DataSource)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Features.DebugMode)
	assert.Positive(t, cfg.RequestTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATA_SOURCE", "mongo")
	t.Setenv("PORT", "9000")
	t.Setenv("REQUEST_TIMEOUT", "30s")

	cfg := Load()
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, SourceMongo, cfg.DataSource)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "30s", cfg.RequestTimeout.String())
	assert.False(t, cfg.Features.DebugMode)
}
