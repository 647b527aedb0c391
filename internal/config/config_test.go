package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "ACxxxx")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_FROM_NUMBER", "")
	t.Setenv("REMINDER_CHECK_INTERVAL", "")
	t.Setenv("REMINDER_DELIVERY", "")
	t.Setenv("DEBUG_MODE", "")

	cfg := Load()
	if cfg.TwilioFromNumber != DefaultFromNumber {
		t.Fatalf("from number = %q, want default %q", cfg.TwilioFromNumber, DefaultFromNumber)
	}
	if cfg.PollInterval != 60*time.Second {
		t.Fatalf("poll interval = %v, want 60s", cfg.PollInterval)
	}
	if cfg.Delivery != DeliveryCall {
		t.Fatalf("delivery = %q, want %q", cfg.Delivery, DeliveryCall)
	}
	if cfg.DryRun {
		t.Fatalf("dry run enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateRejectsMissingCredentials(t *testing.T) {
	cfg := &Config{
		PollInterval: 60 * time.Second,
		Delivery:     DeliveryCall,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing Twilio credentials")
	}

	cfg.TwilioAccountSID = "ACxxxx"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error with auth token still missing")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{
		TwilioAccountSID: "ACxxxx",
		TwilioAuthToken:  "token",
		PollInterval:     0,
		Delivery:         DeliveryCall,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for non-positive poll interval")
	}

	cfg.PollInterval = time.Second
	cfg.Delivery = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown delivery method")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "ACxxxx")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_FROM_NUMBER", "+15005550006")
	t.Setenv("REMINDER_CHECK_INTERVAL", "15")
	t.Setenv("REMINDER_DELIVERY", "sms")
	t.Setenv("DEBUG_MODE", "true")

	cfg := Load()
	if cfg.TwilioFromNumber != "+15005550006" {
		t.Fatalf("from number = %q", cfg.TwilioFromNumber)
	}
	if cfg.PollInterval != 15*time.Second {
		t.Fatalf("poll interval = %v, want 15s", cfg.PollInterval)
	}
	if cfg.Delivery != DeliverySMS {
		t.Fatalf("delivery = %q, want sms", cfg.Delivery)
	}
	if !cfg.DryRun {
		t.Fatalf("DEBUG_MODE=true did not enable dry run")
	}
}
