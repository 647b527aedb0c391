package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmhodges/clock"
	"github.com/vishwanathovi/twilio-reminder/internal/config"
	"github.com/vishwanathovi/twilio-reminder/internal/database"
	"github.com/vishwanathovi/twilio-reminder/internal/engine"
	myopenai "github.com/vishwanathovi/twilio-reminder/internal/openai"
	"github.com/vishwanathovi/twilio-reminder/internal/store"
	"github.com/vishwanathovi/twilio-reminder/internal/twilio"
)

func main() {
	logger := log.New(os.Stdout, "[reminder] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("configuration: %v", err)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("database init failed: %v", err)
	}

	recordStore := store.New(db)
	gateway := twilio.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.DryRun, logger)
	speech := myopenai.New(cfg.OpenAIAPIKey)

	eng := engine.New(cfg, recordStore, gateway, speech, clock.New(), logger)
	if err := eng.Start(); err != nil {
		logger.Fatalf("engine start: %v", err)
	}
	logger.Printf("using Twilio number %s, delivery %s", cfg.TwilioFromNumber, cfg.Delivery)

	waitForShutdown(eng, logger)
}

func waitForShutdown(eng *engine.Engine, logger *log.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")
	eng.Stop()
	logger.Println("reminder service stopped")
}
