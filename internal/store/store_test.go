package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vishwanathovi/twilio-reminder/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite memory: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Reminder{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return New(db)
}

func TestSaveReminderIdempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	r := model.Reminder{
		UserName:        "alice",
		ScheduledDate:   "2024-05-14",
		ScheduledTime:   "08:00",
		Content:         "stretch",
		RepeatFrequency: model.RepeatDaily,
	}
	if err := s.AddReminder(&r); err != nil {
		t.Fatalf("add reminder: %v", err)
	}

	called := time.Date(2024, time.May, 15, 8, 0, 0, 0, time.UTC)
	r.Status = model.StatusCompleted
	r.LastCalledAt = &called

	if err := s.SaveReminder(&r); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.SaveReminder(&r); err != nil {
		t.Fatalf("second save: %v", err)
	}

	reminders, err := s.Reminders()
	if err != nil {
		t.Fatalf("load reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("expected one stored reminder, got %d", len(reminders))
	}
	got := reminders[0]
	if got.Status != model.StatusCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}
	if got.LastCalledAt == nil || !got.LastCalledAt.Equal(called) {
		t.Fatalf("last_called_at = %v, want %v", got.LastCalledAt, called)
	}
}

func TestRemindersOrderedByID(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	for _, content := range []string{"first", "second", "third"} {
		r := model.Reminder{
			UserName:        "alice",
			ScheduledDate:   "2024-05-14",
			ScheduledTime:   "08:00",
			Content:         content,
			RepeatFrequency: model.RepeatNone,
		}
		if err := s.AddReminder(&r); err != nil {
			t.Fatalf("add reminder %q: %v", content, err)
		}
	}

	reminders, err := s.Reminders()
	if err != nil {
		t.Fatalf("load reminders: %v", err)
	}
	var contents []string
	for _, r := range reminders {
		contents = append(contents, r.Content)
	}
	if want := []string{"first", "second", "third"}; !reflect.DeepEqual(contents, want) {
		t.Fatalf("reminders order = %v, want %v", contents, want)
	}
}

func TestAddReminderInitialisesState(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	stale := time.Now()
	r := model.Reminder{
		UserName:        "alice",
		ScheduledDate:   "2024-05-14",
		ScheduledTime:   "08:00",
		Content:         "stretch",
		RepeatFrequency: model.RepeatNone,
		Status:          model.StatusCompleted,
		LastCalledAt:    &stale,
	}
	if err := s.AddReminder(&r); err != nil {
		t.Fatalf("add reminder: %v", err)
	}

	reminders, err := s.Reminders()
	if err != nil {
		t.Fatalf("load reminders: %v", err)
	}
	if got := reminders[0]; got.Status != model.StatusPending || got.LastCalledAt != nil {
		t.Fatalf("new reminder not initialised to pending/never-called: %+v", got)
	}
}

func TestAddUserRejectsDuplicates(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if err := s.AddUser(&model.User{Name: "alice", PhoneNumber: "+14155550100"}); err != nil {
		t.Fatalf("add user: %v", err)
	}
	err := s.AddUser(&model.User{Name: "alice", PhoneNumber: "+14155550199"})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestUserByNameExactMatch(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if err := s.AddUser(&model.User{Name: "Alice", PhoneNumber: "+14155550100"}); err != nil {
		t.Fatalf("add user: %v", err)
	}

	user, err := s.UserByName("Alice")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if user == nil || user.PhoneNumber != "+14155550100" {
		t.Fatalf("expected Alice, got %+v", user)
	}

	// Lookup is case-sensitive.
	user, err = s.UserByName("alice")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if user != nil {
		t.Fatalf("case-insensitive match returned %+v", user)
	}
}
