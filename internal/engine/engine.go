// Package engine drives the poll-execute-update loop: every interval
// it reloads all records, finds due reminders, places their calls and
// persists the resulting state transitions.
package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/jmhodges/clock"
	"github.com/robfig/cron/v3"
	"github.com/vishwanathovi/twilio-reminder/internal/config"
	"github.com/vishwanathovi/twilio-reminder/internal/model"
	"github.com/vishwanathovi/twilio-reminder/internal/schedule"
)

// RecordStore is the persistence contract the engine consumes. It is
// re-read in full every cycle; the engine never caches records.
type RecordStore interface {
	Reminders() ([]model.Reminder, error)
	Users() ([]model.User, error)
	SaveReminder(*model.Reminder) error
}

// CallGateway places the outbound delivery. Transport-level errors
// surface as returned errors and are recorded as failed attempts.
type CallGateway interface {
	PlaceCall(to, text string) error
	SendMessage(to, body string) error
}

// SpeechCondenser optionally shortens reminder content before it is
// spoken. May be nil, in which case content is delivered verbatim.
type SpeechCondenser interface {
	CondenseSpokenText(ctx context.Context, content string) (string, error)
}

// Engine coordinates the record store, the due-check predicate and
// the call gateway.
type Engine struct {
	cfg     *config.Config
	store   RecordStore
	gateway CallGateway
	speech  SpeechCondenser
	clk     clock.Clock
	cron    *cron.Cron
	logger  *log.Logger
}

// New creates a fully configured Engine.
func New(cfg *config.Config, store RecordStore, gateway CallGateway, speech SpeechCondenser, clk clock.Clock, logger *log.Logger) *Engine {
	c := cron.New(
		cron.WithLocation(cfg.LocalTimezone),
		cron.WithChain(cron.Recover(cron.PrintfLogger(logger))),
	)
	return &Engine{
		cfg:     cfg,
		store:   store,
		gateway: gateway,
		speech:  speech,
		clk:     clk,
		cron:    c,
		logger:  logger,
	}
}

// Start registers the poll job and starts the scheduler loop.
func (e *Engine) Start() error {
	spec := fmt.Sprintf("@every %s", e.cfg.PollInterval)
	_, err := e.cron.AddFunc(spec, func() {
		e.RunCycle(context.Background())
	})
	if err != nil {
		return err
	}
	e.cron.Start()
	e.logger.Printf("engine: checking for due reminders every %s", e.cfg.PollInterval)
	return nil
}

// Stop stops the scheduler and waits for a running cycle to finish,
// so no reminder update is left half-written.
func (e *Engine) Stop() {
	ctx := e.cron.Stop()
	<-ctx.Done()
}

// RunCycle performs one full evaluation pass. Per-reminder problems
// (malformed record, unknown user, delivery failure) are isolated to
// that reminder; a store error aborts the remainder of the cycle and
// the work is retried on the next tick.
func (e *Engine) RunCycle(ctx context.Context) {
	reminders, err := e.store.Reminders()
	if err != nil {
		e.logger.Printf("engine: %v, skipping cycle", err)
		return
	}
	users, err := e.store.Users()
	if err != nil {
		e.logger.Printf("engine: %v, skipping cycle", err)
		return
	}

	byName := make(map[string]model.User, len(users))
	for _, u := range users {
		byName[u.Name] = u
	}

	for i := range reminders {
		r := reminders[i]

		due, err := schedule.IsDue(r, e.clk.Now().In(e.cfg.LocalTimezone))
		if err != nil {
			e.logger.Printf("engine: skipping malformed record: %v", err)
			continue
		}
		if !due {
			continue
		}

		user, ok := byName[r.UserName]
		if !ok {
			e.logger.Printf("engine: reminder %d references unknown user %q, skipping", r.ID, r.UserName)
			continue
		}

		if err := e.execute(ctx, &r, user); err != nil {
			e.logger.Printf("engine: %v, aborting cycle", err)
			return
		}
	}
}

// execute delivers one due reminder and persists the state change
// before the caller moves on to the next reminder. Only the store
// write can fail the cycle; a delivery failure is recorded on the
// reminder itself.
func (e *Engine) execute(ctx context.Context, r *model.Reminder, user model.User) error {
	deliverErr := e.deliver(ctx, r, user)

	now := e.clk.Now().In(e.cfg.LocalTimezone)
	r.LastCalledAt = &now
	if deliverErr != nil {
		r.Status = model.StatusFailed
		e.logger.Printf("engine: reminder %d for %s failed: %v", r.ID, r.UserName, deliverErr)
	} else {
		r.Status = model.StatusCompleted
		e.logger.Printf("engine: reminder %d for %s completed", r.ID, r.UserName)
	}

	return e.store.SaveReminder(r)
}

func (e *Engine) deliver(ctx context.Context, r *model.Reminder, user model.User) error {
	text := e.spokenText(ctx, r.Content)
	if e.cfg.Delivery == config.DeliverySMS {
		return e.gateway.SendMessage(user.PhoneNumber, text)
	}
	return e.gateway.PlaceCall(user.PhoneNumber, text)
}

// spokenText condenses long content for speech when a condenser is
// configured; any condenser error falls back to the raw content.
func (e *Engine) spokenText(ctx context.Context, content string) string {
	if e.speech == nil || len(content) <= 200 {
		return content
	}
	condensed, err := e.speech.CondenseSpokenText(ctx, content)
	if err != nil {
		e.logger.Printf("engine: condense spoken text: %v", err)
		return content
	}
	return condensed
}
