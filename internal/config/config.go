package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by QR_CUT_STORAGE_BACKEND.
const (
	StorageLocal = "local"
	StorageMinIO = "minio"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	PingTimeoutSec     int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StorageConfig selects where uploads and processed artifacts are kept and
// how long they live.
type StorageConfig struct {
	Backend         string
	Root            string
	RetentionHours  int
	CleanupSchedule string
}

// Retention returns the artifact lifetime as a duration.
func (s StorageConfig) Retention() time.Duration {
	return time.Duration(s.RetentionHours) * time.Hour
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env            string
	AppHost        string
	Port           string
	Timezone       string
	ProjectName    string
	Version        string
	AllowedOrigins []string
	MaxUploadMB    int
	Database       DatabaseConfig
	MinIO          MinIOConfig
	Storage        StorageConfig
}

// IsProduction reports whether the service runs with production defaults.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Env:            getEnv("APP_ENV", "development"),
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		ProjectName:    getEnv("QR_CUT_PROJECT_NAME", "QR Cut API"),
		Version:        getEnv("QR_CUT_VERSION", "1.0.0"),
		AllowedOrigins: getEnvList("QR_CUT_ALLOWED_ORIGINS", []string{"*"}),
		MaxUploadMB:    getEnvInt("QR_CUT_MAX_UPLOAD_MB", 50),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			PingTimeoutSec:     getEnvInt("DB_PING_TIMEOUT_SEC", 5),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Storage: StorageConfig{
			Backend:         strings.ToLower(getEnv("QR_CUT_STORAGE_BACKEND", StorageLocal)),
			Root:            getEnv("QR_CUT_STORAGE_ROOT", "storage"),
			RetentionHours:  getEnvInt("QR_CUT_RETENTION_HOURS", 24),
			CleanupSchedule: getEnv("QR_CUT_CLEANUP_SCHEDULE", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping blank items.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
