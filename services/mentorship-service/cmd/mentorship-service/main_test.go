package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVICE_NAME", "PORT", "LOG_LEVEL", "STORE_DRIVER", "DATABASE_URL", "DB_MAX_CONNS",
		"SEED_DEMO_DATA", "APP_TIMEZONE", "SLOT_STEP_MINUTES", "JWT_SECRET", "JWT_TTL",
		"KAFKA_BROKERS", "EVENT_QUEUE_SIZE", "REDIS_ADDR", "REDIS_DB", "RATE_LIMIT_PER_MINUTE",
		"CORS_ALLOWED_ORIGINS", "REQUEST_BODY_LIMIT_BYTES", "REQUEST_TIMEOUT",
		"BREAKER_FAILURES", "BREAKER_OPEN_TIMEOUT", "DB_TRACE_QUERIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mentorship-service", cfg.Service)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.True(t, cfg.SeedDemo)
	assert.False(t, cfg.DBTrace)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 30*time.Minute, cfg.SlotStep)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, int64(1<<20), cfg.BodyLimit)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, uint32(5), cfg.Breaker.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.Breaker.OpenTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_TIMEZONE", "America/Bogota")
	t.Setenv("SLOT_STEP_MINUTES", "15")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/mentorship")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "America/Bogota", cfg.Location.String())
	assert.Equal(t, 15*time.Minute, cfg.SlotStep)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSOrigins)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"unknown driver":    {"STORE_DRIVER", "mongo"},
		"missing dsn":       {"STORE_DRIVER", "postgres"},
		"bad timezone":      {"APP_TIMEZONE", "Mars/Olympus"},
		"zero step":         {"SLOT_STEP_MINUTES", "0"},
		"step not a number": {"SLOT_STEP_MINUTES", "half"},
		"bad port":          {"PORT", "0"},
		"bad ttl":           {"JWT_TTL", "-1h"},
		"zero breaker":      {"BREAKER_FAILURES", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := loadConfig()
			assert.Error(t, err)
		})
	}
}

func TestOpenStoreMemory(t *testing.T) {
	clearEnv(t)
	cfg, err := loadConfig()
	require.NoError(t, err)

	store, catalog, checks, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()
	assert.NotNil(t, catalog)
	assert.Empty(t, checks)
	assert.NoError(t, store.Ping(context.Background()))
}
