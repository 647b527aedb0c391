package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Delivery methods for due reminders.
const (
	DeliveryCall = "call"
	DeliverySMS  = "sms"
)

// DefaultFromNumber is the sender identity used when
// TWILIO_FROM_NUMBER is not set.
const DefaultFromNumber = "+16108313946"

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	PollInterval     time.Duration
	Delivery         string
	DryRun           bool
	DatabaseURL      string
	OpenAIAPIKey     string
	LocalTimezone    *time.Location
}

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := getenvDefault("TWILIO_FROM_NUMBER", DefaultFromNumber)
	intervalSeconds := parseIntEnv("REMINDER_CHECK_INTERVAL", 60)
	delivery := getenvDefault("REMINDER_DELIVERY", DeliveryCall)
	dryRun := os.Getenv("DEBUG_MODE") == "true"
	databaseURL := os.Getenv("DATABASE_URL")
	openAIKey := os.Getenv("OPENAI_API_KEY")
	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")

	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	return &Config{
		TwilioAccountSID: accountSID,
		TwilioAuthToken:  authToken,
		TwilioFromNumber: fromNumber,
		PollInterval:     time.Duration(intervalSeconds) * time.Second,
		Delivery:         delivery,
		DryRun:           dryRun,
		DatabaseURL:      databaseURL,
		OpenAIAPIKey:     openAIKey,
		LocalTimezone:    location,
	}
}

// Validate reports configuration the service cannot start without.
func (c *Config) Validate() error {
	if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" {
		return fmt.Errorf("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN must be set")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("REMINDER_CHECK_INTERVAL must be a positive number of seconds")
	}
	if c.Delivery != DeliveryCall && c.Delivery != DeliverySMS {
		return fmt.Errorf("REMINDER_DELIVERY must be %q or %q, got %q", DeliveryCall, DeliverySMS, c.Delivery)
	}
	return nil
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func parseIntEnv(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("config: unable to parse %s=%q as int: %v", key, value, err)
		return def
	}
	return parsed
}
