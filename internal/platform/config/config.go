package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
	Environment        string
	OrgName            string
	SeedAdminName      string
	SeedAdminEmail     string
	SeedAdminPassword  string
	EmailEnabled       bool
	EmailFrom          string
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	SMTPUseTLS         bool
	RunMigrations      bool
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
	ResetOTPTTL        time.Duration
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvDuration("JWT_TTL", 8*time.Hour),
		Environment:        getEnv("APP_ENV", "development"),
		OrgName:            getEnv("ORG_NAME", "Employee Management System"),
		SeedAdminName:      getEnv("SUPER_ADMIN_NAME", "Super Admin"),
		SeedAdminEmail:     getEnv("SUPER_ADMIN_EMAIL", ""),
		SeedAdminPassword:  getEnv("SUPER_ADMIN_PASSWORD", ""),
		EmailEnabled:       getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:          getEnv("EMAIL_FROM", "no-reply@example.com"),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:         getEnvBool("SMTP_USE_TLS", true),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:            getEnvBool("RUN_SEED", true),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		ResetOTPTTL:        getEnvDuration("RESET_OTP_TTL", 10*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
		return fmt.Errorf("SUPER_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}
