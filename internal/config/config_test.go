package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("QR_CUT_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("QR_CUT_RETENTION_HOURS", "6")
	t.Setenv("QR_CUT_STORAGE_BACKEND", "MinIO")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 6*time.Hour, cfg.Storage.Retention())
	assert.Equal(t, StorageMinIO, cfg.Storage.Backend)
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "QR_CUT_PROJECT_NAME", "QR_CUT_VERSION", "QR_CUT_ALLOWED_ORIGINS",
		"QR_CUT_STORAGE_BACKEND", "QR_CUT_STORAGE_ROOT", "QR_CUT_RETENTION_HOURS", "QR_CUT_CLEANUP_SCHEDULE", "APP_TIMEZONE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "QR Cut API", cfg.ProjectName)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, StorageLocal, cfg.Storage.Backend)
	assert.Equal(t, "storage", cfg.Storage.Root)
	assert.Equal(t, 24, cfg.Storage.RetentionHours)
	assert.Empty(t, cfg.Storage.CleanupSchedule)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"

	t.Setenv(key, " , ")
	assert.Equal(t, []string{"x"}, getEnvList(key, []string{"x"}))

	t.Setenv(key, "a,,b ")
	assert.Equal(t, []string{"a", "b"}, getEnvList(key, nil))
}
