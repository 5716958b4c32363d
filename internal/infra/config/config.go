package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the compliance engine
type AppConfig struct {
	DatabaseURL string
	LogLevel    string
	Environment string

	// RosterPath points at the tracked-location roster YAML.
	RosterPath string

	// AppBaseURL is the portal address embedded in reminder messages.
	AppBaseURL string

	// Twilio SMS transport. Leaving these unset disables SMS sends; the
	// dispatcher then reports a configuration failure per recipient instead
	// of crashing.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// SendGrid email transport. Same unset semantics as Twilio.
	SendGridAPIKey string
	FromEmail      string
	FromName       string

	// SendInterval is the fixed delay between consecutive reminder sends,
	// keeping the engine inside provider rate limits.
	SendInterval time.Duration

	// Cron specs for the two designated compliance-check run times.
	CronSpecPrimaryReminder string
	CronSpecFinalReminder   string

	// RollbarToken enables error forwarding when set.
	RollbarToken string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.RosterPath = os.Getenv("ROSTER_PATH")
	if cfg.RosterPath == "" {
		cfg.RosterPath = "config/roster.yaml" // Default roster location
	}

	cfg.AppBaseURL = os.Getenv("APP_BASE_URL")
	if cfg.AppBaseURL == "" {
		cfg.AppBaseURL = "http://localhost:3000"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.TwilioAccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.TwilioAuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.TwilioFromNumber = os.Getenv("TWILIO_FROM_NUMBER")

	cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	cfg.FromEmail = os.Getenv("FROM_EMAIL")
	if cfg.FromEmail == "" {
		cfg.FromEmail = "noreply@localhost"
	}
	cfg.FromName = os.Getenv("FROM_NAME")
	if cfg.FromName == "" {
		cfg.FromName = "Collection Compliance"
	}

	sendIntervalStr := os.Getenv("SEND_INTERVAL")
	if sendIntervalStr == "" {
		sendIntervalStr = "1500ms" // Default inter-send delay
	}
	sendInterval, err := time.ParseDuration(sendIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SEND_INTERVAL: %w", err)
	}
	if sendInterval < 0 {
		return nil, fmt.Errorf("SEND_INTERVAL must not be negative")
	}
	cfg.SendInterval = sendInterval

	cfg.CronSpecPrimaryReminder = os.Getenv("CRON_SPEC_PRIMARY_REMINDER")
	if cfg.CronSpecPrimaryReminder == "" {
		cfg.CronSpecPrimaryReminder = "0 10 * * 1" // Default: 10:00 AM Monday
	}
	cfg.CronSpecFinalReminder = os.Getenv("CRON_SPEC_FINAL_REMINDER")
	if cfg.CronSpecFinalReminder == "" {
		cfg.CronSpecFinalReminder = "0 16 * * 2" // Default: 4:00 PM Tuesday
	}

	cfg.RollbarToken = os.Getenv("ROLLBAR_TOKEN")

	return cfg, nil
}

// SMSConfigured reports whether all Twilio credentials are present.
func (c *AppConfig) SMSConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

// EmailConfigured reports whether the SendGrid credential is present.
func (c *AppConfig) EmailConfigured() bool {
	return c.SendGridAPIKey != ""
}
