// Package config reads the service settings from the environment. A .env file
// in the working directory is loaded first by godotenv/autoload in main.
package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig is the Postgres pool backing every repository.
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
}

// MinIOConfig points at the attachment bucket.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PresignExpiry time.Duration
}

// AuthConfig controls how session tokens on RPC calls are verified.
// When JWKSURL is set, tokens are verified against the remote key set;
// otherwise JWTSecret is used as an HS256 shared secret.
type AuthConfig struct {
	JWTSecret string
	JWKSURL   string
	Issuer    string
	Audience  string
}

// CronConfig holds settings for the maintenance endpoints and the optional in-process scheduler.
type CronConfig struct {
	Secret             string
	TrashRetentionDays int
	SchedulerEnabled   bool
	CleanupSchedule    string
	RecurrenceSchedule string
	ArchiveSchedule    string
}

// RedisConfig holds the connection used for maintenance job locks.
// An empty URL disables locking.
type RedisConfig struct {
	URL     string
	LockTTL time.Duration
}

// AppConfig is the whole service configuration.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	LogLevel string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
	Cron     CronConfig
	Redis    RedisConfig
}

// Load never fails: unset or malformed variables take their defaults, and
// missing connection settings surface when the clients are built.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
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
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", "attachments"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PresignExpiry: getEnvDuration("MINIO_PRESIGN_EXPIRY", time.Hour),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			JWKSURL:   getEnv("AUTH_JWKS_URL", ""),
			Issuer:    getEnv("AUTH_ISSUER", ""),
			Audience:  getEnv("AUTH_AUDIENCE", ""),
		},
		Cron: CronConfig{
			Secret:             getEnv("CRON_SECRET", ""),
			TrashRetentionDays: getEnvInt("TRASH_RETENTION_DAYS", 7),
			SchedulerEnabled:   getEnvBool("SCHEDULER_ENABLED", false),
			CleanupSchedule:    getEnv("SCHEDULE_CLEANUP", "0 3 * * *"),
			RecurrenceSchedule: getEnv("SCHEDULE_RECURRENCE", "5 0 * * *"),
			ArchiveSchedule:    getEnv("SCHEDULE_ARCHIVE", "15 0 * * *"),
		},
		Redis: RedisConfig{
			URL:     getEnv("REDIS_URL", ""),
			LockTTL: getEnvDuration("JOB_LOCK_TTL", 10*time.Minute),
		},
	}
}

// Location resolves the configured time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parsed reads key through parse. Unset or unparsable values yield def.
func parsed[T any](key string, def T, parse func(string) (T, error)) T {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	out, err := parse(v)
	if err != nil {
		return def
	}
	return out
}

func getEnvBool(key string, def bool) bool {
	return parsed(key, def, strconv.ParseBool)
}

func getEnvInt(key string, def int) int {
	return parsed(key, def, strconv.Atoi)
}

// getEnvDuration accepts Go duration strings; non-positive values fall back to def.
func getEnvDuration(key string, def time.Duration) time.Duration {
	return parsed(key, def, func(v string) (time.Duration, error) {
		d, err := time.ParseDuration(v)
		if err == nil && d <= 0 {
			err = strconv.ErrRange
		}
		return d, err
	})
}
