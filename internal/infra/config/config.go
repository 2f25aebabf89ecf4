package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const defaultAPIBaseURL = "https://brio-site.vercel.app"

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken   string
	DatabaseURL     string // optional; disables the teacher registry and audit when empty
	AdminTelegramID int64
	LogLevel        string
	Environment     string

	APIBaseURL           string
	UploadEndpoint       string
	NotificationEndpoint string
	StorageBucket        string
	StorageHost          string
	UploadNamespace      string
	HTTPTimeout          time.Duration

	WizardVariant string

	CronSpecPlanningReminder string
	CronSpecSessionSweep     string
	SessionIdleTimeout       time.Duration
	MetricsAddr              string // empty disables the metrics endpoint
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr == "" {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
	}
	cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getenv("ENVIRONMENT", "development"))

	cfg.APIBaseURL = strings.TrimRight(getenv("API_BASE_URL", defaultAPIBaseURL), "/")
	cfg.UploadEndpoint = getenv("UPLOAD_ENDPOINT", cfg.APIBaseURL+"/api/storage/upload")
	cfg.NotificationEndpoint = getenv("NOTIFICATION_ENDPOINT", cfg.APIBaseURL+"/api/slack/send-message")
	cfg.StorageBucket = getenv("GCS_BUCKET_NAME", "YOUR_BUCKET_NAME")
	cfg.StorageHost = getenv("STORAGE_HOST", "storage.googleapis.com")
	cfg.UploadNamespace = getenv("UPLOAD_NAMESPACE", "planejamentos")

	cfg.HTTPTimeout, err = time.ParseDuration(getenv("HTTP_TIMEOUT", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}

	cfg.WizardVariant = strings.ToLower(getenv("WIZARD_VARIANT", "multi_month"))

	cfg.CronSpecPlanningReminder = getenv("CRON_SPEC_PLANNING_REMINDER", "0 9 25 * *") // 9 AM on the 25th

	cfg.CronSpecSessionSweep = getenv("CRON_SPEC_SESSION_SWEEP", "*/30 * * * *")
	cfg.SessionIdleTimeout, err = time.ParseDuration(getenv("SESSION_IDLE_TIMEOUT", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT: %w", err)
	}
	if cfg.SessionIdleTimeout <= 0 {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT: must be positive")
	}

	// An explicitly empty METRICS_ADDR turns the endpoint off.
	if v, ok := os.LookupEnv("METRICS_ADDR"); ok {
		cfg.MetricsAddr = strings.TrimSpace(v)
	} else {
		cfg.MetricsAddr = ":9090"
	}

	return cfg, nil
}
