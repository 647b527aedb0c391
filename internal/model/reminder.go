package model

import "time"

// RepeatFrequency is a reminder's recurrence policy.
type RepeatFrequency string

const (
	RepeatNone    RepeatFrequency = "none"
	RepeatDaily   RepeatFrequency = "daily"
	RepeatWeekly  RepeatFrequency = "weekly"
	RepeatMonthly RepeatFrequency = "monthly"
)

// Status records the outcome of the most recent call attempt.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Reminder represents a scheduled phone-call reminder for a user.
// ScheduledDate (YYYY-MM-DD) and ScheduledTime (HH:MM) are kept in
// their stored string form; the schedule package parses them.
type Reminder struct {
	ID              uint            `gorm:"primaryKey"`
	UserName        string          `gorm:"index;not null"`
	ScheduledDate   string          `gorm:"not null"`
	ScheduledTime   string          `gorm:"not null"`
	Content         string          `gorm:"type:text;not null"`
	RepeatFrequency RepeatFrequency `gorm:"not null;default:none"`
	Status          Status          `gorm:"not null;default:pending"`
	LastCalledAt    *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}
