// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Clerk (identity provider) Configuration
	ClerkSecretKey     string `mapstructure:"CLERK_SECRET_KEY"`
	ClerkWebhookSecret string `mapstructure:"CLERK_WEBHOOK_SECRET"`
	ClerkAPIBaseURL    string `mapstructure:"CLERK_API_BASE_URL"`

	// Session token verification
	SessionJWTSecret string `mapstructure:"SESSION_JWT_SECRET"`

	// Webhook signature tolerance (replay window)
	WebhookTolerance time.Duration `mapstructure:"WEBHOOK_TOLERANCE_SECONDS"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "learnhub_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("CLERK_SECRET_KEY", "")
	v.SetDefault("CLERK_WEBHOOK_SECRET", "")
	v.SetDefault("CLERK_API_BASE_URL", "https://api.clerk.com/v1")

	v.SetDefault("SESSION_JWT_SECRET", "")

	v.SetDefault("WEBHOOK_TOLERANCE_SECONDS", 300)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.WebhookTolerance = time.Duration(v.GetInt("WEBHOOK_TOLERANCE_SECONDS")) * time.Second

	// Basic validation for critical configs
	if strings.TrimSpace(cfg.ClerkWebhookSecret) == "" {
		return nil, fmt.Errorf("FATAL: CLERK_WEBHOOK_SECRET is not set. It is required to verify inbound identity webhooks")
	}
	if strings.TrimSpace(cfg.ClerkSecretKey) == "" {
		return nil, fmt.Errorf("FATAL: CLERK_SECRET_KEY is not set. It is required for the identity provider metadata API")
	}
	if strings.TrimSpace(cfg.SessionJWTSecret) == "" {
		return nil, fmt.Errorf("FATAL: SESSION_JWT_SECRET is not set. It is required to verify session tokens")
	}

	return &cfg, nil
}

// DSN builds the GORM Postgres DSN from the individual DB_* parameters.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone)
}
