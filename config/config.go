package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"rocketboost-admin/logging"
)

// Config holds every setting read from the environment
type Config struct {
	Env  string
	Port string

	DatabaseURL string

	BulkWebhookURL   string
	RefillWebhookURL string

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	CORSOrigin        string
	TrustProxy        bool

	RatesConfigPath       string
	GoogleCredentialsPath string
	ChromePath            string
	BalanceCacheTTL       time.Duration
	LowBalanceThreshold   decimal.Decimal
	WebhookTimeout        time.Duration

	Logging logging.Config
}

// LoadDotEnv loads .env into the process environment outside production.
// Values in .env override variables already set in the shell.
func LoadDotEnv() {
	if os.Getenv("ENV") == "production" {
		return
	}
	envPath := ".env"
	if err := godotenv.Overload(envPath); err != nil {
		logging.Sugar.Debugf("⚠️ .env file not found at %s, using system environment variables", envPath)
		return
	}
	logging.Sugar.Infof("Loaded environment variables from %s", envPath)
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env:                   getEnv("ENV", "development"),
		Port:                  strings.TrimPrefix(getEnv("PORT", "3001"), ":"),
		BulkWebhookURL:        os.Getenv("N8N_BULK_WEBHOOK_URL"),
		RefillWebhookURL:      os.Getenv("N8N_REFILL_WEBHOOK_URL"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		AdminUsername:         getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:     os.Getenv("ADMIN_PASSWORD_HASH"),
		CORSOrigin:            getEnv("CORS_ORIGIN", "*"),
		TrustProxy:            getEnv("TRUST_PROXY", "false") == "true",
		RatesConfigPath:       os.Getenv("RATES_CONFIG_PATH"),
		GoogleCredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ChromePath:            os.Getenv("CHROME_PATH"),
		Logging: logging.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
	cfg.Logging.Development = cfg.Env == "development"

	dsn, err := databaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = dsn

	if cfg.BalanceCacheTTL, err = getDuration("BALANCE_CACHE_TTL", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.WebhookTimeout, err = getDuration("WEBHOOK_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	threshold := getEnv("LOW_BALANCE_THRESHOLD", "2")
	cfg.LowBalanceThreshold, err = decimal.NewFromString(threshold)
	if err != nil {
		return nil, fmt.Errorf("invalid LOW_BALANCE_THRESHOLD %q: %w", threshold, err)
	}

	return cfg, nil
}

// AuthEnabled reports whether bearer tokens are required on /api routes
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// databaseURL returns DATABASE_URL or builds a DSN from the DB_* variables
func databaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", nil
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		getEnv("DB_PORT", "5432"),
		user,
		os.Getenv("DB_PASSWORD"),
		dbname,
		getEnv("DB_SSLMODE", "disable"),
	), nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	// bare integers are seconds
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: expected duration like 60s", key, raw)
	}
	return time.Duration(secs) * time.Second, nil
}
