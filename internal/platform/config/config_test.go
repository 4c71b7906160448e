package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 800*time.Millisecond, cfg.LoginDelay)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOGIN_DELAY", "0s")
	t.Setenv("STORE_LATENCY", "bogus")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.LoginDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.StoreLatency, "invalid durations fall back to the default")
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
}

func TestLoadConfig_ZeroExpiryFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_DURATION", "0s")
	t.Setenv("SHUTDOWN_TIMEOUT", "0")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")

	fs := NewFlagSet("test")
	require.NoError(t, fs.Parse([]string{"--port", "7070", "--seed-file", "fixtures.yaml"}))

	cfg, err := LoadConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "fixtures.yaml", cfg.SeedFile)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("PGSQL_URL", "")
		_, err := LoadConfig(nil)
		assert.ErrorContains(t, err, "PGSQL_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		_, err := LoadConfig(nil)
		assert.ErrorContains(t, err, "unknown STORAGE_DRIVER")
	})

	t.Run("production with default secret", func(t *testing.T) {
		t.Setenv("IS_PRODUCTION", "true")
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig(nil)
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}
