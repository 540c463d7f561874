package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-site/internal/platform/logger"
	"portfolio-site/internal/platform/logger/loggertest"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	unsetenv(t, "PORT", "STORE_BACKEND", "DATA_FILE", "ADMIN_MODE", "BODY_LIMIT_MB", "UPLOAD_BACKEND")

	cfg, err := Load(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreFile, cfg.StoreBackend)
	assert.Equal(t, "data/data.json", cfg.DataFile)
	assert.False(t, cfg.AdminMode)
	assert.Equal(t, 8, cfg.BodyLimitMB)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ADMIN_MODE", "true")
	t.Setenv("BODY_LIMIT_MB", "nope")
	t.Setenv("UPLOAD_BACKEND", "local")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.AdminMode)
	assert.Equal(t, 8, cfg.BodyLimitMB, "unparsable ints fall back to the default")
}

func TestLoadRejectsBadBackends(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UPLOAD_BACKEND", "local")
	t.Setenv("BODY_LIMIT_MB", "8")

	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err := Load(nil)
	assert.Error(t, err)

	t.Setenv("STORE_BACKEND", "sqlite")
	_, err = Load(nil)
	assert.Error(t, err)

	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("DATA_FILE", "x.json")
	t.Setenv("UPLOAD_BACKEND", "gcs")
	t.Setenv("GCS_BUCKET", "")
	_, err = Load(nil)
	assert.Error(t, err)
}

func TestSecretValuesAreNotLogged(t *testing.T) {
	log, logs := loggertest.NewObserved()
	t.Setenv("ADMIN_TOKEN", "hunter2")
	assert.Equal(t, "hunter2", getEnv("ADMIN_TOKEN", "", log))
	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			assert.NotEqual(t, "hunter2", v)
		}
	}
}
