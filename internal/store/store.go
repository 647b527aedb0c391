package store

import (
	"errors"
	"fmt"

	"github.com/vishwanathovi/twilio-reminder/internal/model"
	"gorm.io/gorm"
)

// ErrDuplicateUser is returned by AddUser when the name is taken.
var ErrDuplicateUser = errors.New("user already exists")

// Store is the record store for users and reminders. The engine
// re-reads it fully every poll cycle, so external edits between
// cycles are picked up without any in-process caching.
type Store struct {
	db *gorm.DB
}

// New wraps an open database connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Reminders loads every reminder, ordered by id.
func (s *Store) Reminders() ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := s.db.Order("id asc").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("load reminders: %w", err)
	}
	return reminders, nil
}

// Users loads every user.
func (s *Store) Users() ([]model.User, error) {
	var users []model.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// UserByName finds a user by exact, case-sensitive name.
// Returns (nil, nil) when no such user exists.
func (s *Store) UserByName(name string) (*model.User, error) {
	var user model.User
	err := s.db.Where("name = ?", name).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", name, err)
	}
	return &user, nil
}

// SaveReminder upserts a reminder by id. Saving the same state twice
// leaves the stored record unchanged.
func (s *Store) SaveReminder(r *model.Reminder) error {
	if err := s.db.Save(r).Error; err != nil {
		return fmt.Errorf("save reminder %d: %w", r.ID, err)
	}
	return nil
}

// AddReminder creates a new reminder. Status and LastCalledAt are
// forced to their initial values regardless of what the caller set.
func (s *Store) AddReminder(r *model.Reminder) error {
	r.Status = model.StatusPending
	r.LastCalledAt = nil
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("add reminder: %w", err)
	}
	return nil
}

// AddUser creates a new user, rejecting duplicate names.
func (s *Store) AddUser(u *model.User) error {
	existing, err := s.UserByName(u.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateUser
	}
	if err := s.db.Create(u).Error; err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	return nil
}
