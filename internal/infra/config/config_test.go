package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("ADMIN_TELEGRAM_ID", "12345")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{
		"DATABASE_URL", "LOG_LEVEL", "ENVIRONMENT", "API_BASE_URL", "UPLOAD_ENDPOINT",
		"NOTIFICATION_ENDPOINT", "GCS_BUCKET_NAME", "STORAGE_HOST", "UPLOAD_NAMESPACE",
		"HTTP_TIMEOUT", "WIZARD_VARIANT", "CRON_SPEC_PLANNING_REMINDER",
		"CRON_SPEC_SESSION_SWEEP", "SESSION_IDLE_TIMEOUT",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(12345), cfg.AdminTelegramID)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://brio-site.vercel.app/api/storage/upload", cfg.UploadEndpoint)
	assert.Equal(t, "https://brio-site.vercel.app/api/slack/send-message", cfg.NotificationEndpoint)
	assert.Equal(t, "YOUR_BUCKET_NAME", cfg.StorageBucket)
	assert.Equal(t, "storage.googleapis.com", cfg.StorageHost)
	assert.Equal(t, "planejamentos", cfg.UploadNamespace)
	assert.Equal(t, 2*time.Minute, cfg.HTTPTimeout)
	assert.Equal(t, "multi_month", cfg.WizardVariant)
	assert.Equal(t, "0 9 25 * *", cfg.CronSpecPlanningReminder)
	assert.Equal(t, "*/30 * * * *", cfg.CronSpecSessionSweep)
	assert.Equal(t, 24*time.Hour, cfg.SessionIdleTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("API_BASE_URL", "http://localhost:3000/")
	t.Setenv("UPLOAD_ENDPOINT", "")
	t.Setenv("NOTIFICATION_ENDPOINT", "http://hooks.local/send")
	t.Setenv("HTTP_TIMEOUT", "15s")
	t.Setenv("WIZARD_VARIANT", "Classic")
	t.Setenv("METRICS_ADDR", "")
	t.Setenv("SESSION_IDLE_TIMEOUT", "90m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api/storage/upload", cfg.UploadEndpoint)
	assert.Equal(t, "http://hooks.local/send", cfg.NotificationEndpoint)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "classic", cfg.WizardVariant)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, 90*time.Minute, cfg.SessionIdleTimeout)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing token", map[string]string{"TELEGRAM_TOKEN": "", "ADMIN_TELEGRAM_ID": "1"}},
		{"missing admin", map[string]string{"TELEGRAM_TOKEN": "t", "ADMIN_TELEGRAM_ID": ""}},
		{"bad admin", map[string]string{"TELEGRAM_TOKEN": "t", "ADMIN_TELEGRAM_ID": "abc"}},
		{"bad timeout", map[string]string{"TELEGRAM_TOKEN": "t", "ADMIN_TELEGRAM_ID": "1", "HTTP_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"TELEGRAM_TOKEN": "t", "ADMIN_TELEGRAM_ID": "1", "HTTP_TIMEOUT": "-1s"}},
		{"bad idle timeout", map[string]string{"TELEGRAM_TOKEN": "t", "ADMIN_TELEGRAM_ID": "1", "SESSION_IDLE_TIMEOUT": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
