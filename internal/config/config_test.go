package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PORT", "MINIO_BUCKET", "MINIO_PRESIGN_EXPIRY",
		"TRASH_RETENTION_DAYS", "SCHEDULE_CLEANUP", "SCHEDULER_ENABLED", "JOB_LOCK_TTL"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "attachments", cfg.MinIO.Bucket)
	assert.Equal(t, time.Hour, cfg.MinIO.PresignExpiry)
	assert.Equal(t, 7, cfg.Cron.TrashRetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Cron.CleanupSchedule)
	assert.False(t, cfg.Cron.SchedulerEnabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.LockTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CRON_SECRET", "s3cret")
	t.Setenv("TRASH_RETENTION_DAYS", "14")
	t.Setenv("SCHEDULER_ENABLED", "1")
	t.Setenv("JOB_LOCK_TTL", "90s")
	t.Setenv("AUTH_JWKS_URL", "https://id.example.com/.well-known/jwks.json")

	cfg := Load()

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "s3cret", cfg.Cron.Secret)
	assert.Equal(t, 14, cfg.Cron.TrashRetentionDays)
	assert.True(t, cfg.Cron.SchedulerEnabled)
	assert.Equal(t, 90*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, "https://id.example.com/.well-known/jwks.json", cfg.Auth.JWKSURL)
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("MINIO_USE_SSL", "yes please")
	t.Setenv("MINIO_PRESIGN_EXPIRY", "-5m")
	t.Setenv("JOB_LOCK_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.MinIO.UseSSL)
	assert.Equal(t, time.Hour, cfg.MinIO.PresignExpiry)
	assert.Equal(t, 10*time.Minute, cfg.Redis.LockTTL)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Europe/Amsterdam"}
	assert.Equal(t, "Europe/Amsterdam", cfg.Location().String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"2m", 2 * time.Minute},
		{"0s", time.Second},
		{"-5s", time.Second},
		{"soon", time.Second},
		{"", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_DURATION_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvDuration("TEST_DURATION_VAR", time.Second))
		})
	}
}
