// Package schedule holds the due-check predicate: given a reminder's
// schedule, repeat policy and last-attempt timestamp, decide whether
// it should fire at a given moment. Pure functions, no I/O.
package schedule

import (
	"fmt"
	"time"

	"github.com/vishwanathovi/twilio-reminder/internal/model"
)

// Interval returns the minimum duration between attempts for a
// recurring frequency. Monthly is a fixed 30 days, not calendar
// months; the stored schedule has always been interpreted that way
// and changing it would shift existing reminders.
func Interval(freq model.RepeatFrequency) (time.Duration, error) {
	switch freq {
	case model.RepeatDaily:
		return 24 * time.Hour, nil
	case model.RepeatWeekly:
		return 7 * 24 * time.Hour, nil
	case model.RepeatMonthly:
		return 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("no interval for repeat frequency %q", freq)
	}
}

// IsDue reports whether the reminder should be executed at now.
//
// One-time reminders are due once their scheduled moment has passed
// and they have never been attempted. Recurring reminders are due
// once today's scheduled time-of-day has passed and the minimum
// interval since the last attempt (if any) has elapsed; the calendar
// date on the record only matters before the first attempt is even
// possible, it is the time-of-day that recurs. Both comparisons are
// inclusive.
//
// A reminder with an unparseable date, time, or repeat frequency is
// never due; the error identifies the bad field so the caller can
// report that record and move on.
func IsDue(r model.Reminder, now time.Time) (bool, error) {
	date, err := time.ParseInLocation(model.DateLayout, r.ScheduledDate, now.Location())
	if err != nil {
		return false, fmt.Errorf("reminder %d: bad scheduled_date %q: %w", r.ID, r.ScheduledDate, err)
	}
	tod, err := time.Parse(model.TimeLayout, r.ScheduledTime)
	if err != nil {
		return false, fmt.Errorf("reminder %d: bad scheduled_time %q: %w", r.ID, r.ScheduledTime, err)
	}

	if r.RepeatFrequency == model.RepeatNone {
		scheduledAt := at(date, tod)
		return r.LastCalledAt == nil && !now.Before(scheduledAt), nil
	}

	interval, err := Interval(r.RepeatFrequency)
	if err != nil {
		return false, fmt.Errorf("reminder %d: bad repeat_frequency %q", r.ID, r.RepeatFrequency)
	}

	// Time-of-day gate: the scheduled time must have passed today.
	if now.Before(at(now, tod)) {
		return false, nil
	}

	// Elapsed-interval gate.
	if r.LastCalledAt == nil {
		return true, nil
	}
	return now.Sub(*r.LastCalledAt) >= interval, nil
}

// at combines day's calendar date with tod's time of day, in day's
// location.
func at(day, tod time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		tod.Hour(), tod.Minute(), 0, 0, day.Location())
}
