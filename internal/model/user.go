package model

// User is a call recipient. Name is the unique identifier; reminders
// reference it by exact, case-sensitive match.
type User struct {
	Name        string `gorm:"primaryKey"`
	PhoneNumber string `gorm:"not null"`
}
