package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendRedis, cfg.Session.Backend)
	assert.Equal(t, "labdesk:session", cfg.Session.Namespace)
	assert.Equal(t, 15*time.Second, cfg.LabAPI.Timeout)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, 8*time.Hour, cfg.Sandbox.TokenTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":             "production",
		"SESSION_BACKEND": " Mongo ",
		"LAB_API_URL":     "https://lab.example.com/api",
		"LAB_API_TIMEOUT": "3s",
		"AUDIT_ENABLED":   "true",
		"AUDIT_WORKERS":   "4",
		"REDIS_DB":        "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, BackendMongo, cfg.Session.Backend)
	assert.Equal(t, "https://lab.example.com/api", cfg.LabAPI.URL)
	assert.Equal(t, 3*time.Second, cfg.LabAPI.Timeout)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 4, cfg.Audit.Workers)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_BACKEND": "memcached",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_BACKEND")
}

func TestValidate_AuditNeedsWorkers(t *testing.T) {
	cfg := &Config{
		LabAPI:  LabAPIConfig{URL: "http://x"},
		Session: SessionConfig{Backend: BackendRedis, Namespace: "ns"},
		Audit:   AuditConfig{Enabled: true},
	}
	assert.ErrorContains(t, cfg.Validate(), "AUDIT_WORKERS")
}

func TestLoad_MalformedDuration(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"LAB_API_TIMEOUT": "soon",
	}))
	assert.Error(t, err)
}
