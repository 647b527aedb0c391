package model

import (
	"strings"
	"time"
)

// Stored layouts for Reminder.ScheduledDate and Reminder.ScheduledTime.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ValidPhoneNumber reports whether s looks like an E.164 number:
// a leading + followed by digits only, at least ten characters total.
func ValidPhoneNumber(s string) bool {
	if len(s) < 10 || !strings.HasPrefix(s, "+") {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidDate reports whether s parses as YYYY-MM-DD.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime reports whether s parses as HH:MM.
func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// ParseRepeatFrequency normalises and validates a repeat frequency.
func ParseRepeatFrequency(s string) (RepeatFrequency, bool) {
	switch RepeatFrequency(strings.ToLower(strings.TrimSpace(s))) {
	case RepeatNone:
		return RepeatNone, true
	case RepeatDaily:
		return RepeatDaily, true
	case RepeatWeekly:
		return RepeatWeekly, true
	case RepeatMonthly:
		return RepeatMonthly, true
	default:
		return "", false
	}
}
