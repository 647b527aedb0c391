// reminderctl is the entry tool for the reminder service: it creates
// and lists users and reminders in the same record store the poller
// reads. It never evaluates due-ness itself.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vishwanathovi/twilio-reminder/internal/config"
	"github.com/vishwanathovi/twilio-reminder/internal/database"
	"github.com/vishwanathovi/twilio-reminder/internal/model"
	"github.com/vishwanathovi/twilio-reminder/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:           "reminderctl",
		Short:         "Manage users and reminders for the reminder service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddUserCommand(),
		newAddReminderCommand(),
		newListUsersCommand(),
		newListRemindersCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reminderctl:", err)
		os.Exit(1)
	}
}

// openStore connects to the same database the service uses.
func openStore() (*store.Store, error) {
	cfg := config.Load()
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	return store.New(db), nil
}

func newAddUserCommand() *cobra.Command {
	var name, phone string

	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Register a user who can receive reminder calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			if !model.ValidPhoneNumber(phone) {
				return fmt.Errorf("--phone must be E.164, e.g. +14155551234")
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.AddUser(&model.User{Name: name, PhoneNumber: phone}); err != nil {
				return err
			}
			fmt.Printf("added user %s (%s)\n", name, phone)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "unique user name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number in E.164 format")
	return cmd
}

func newAddReminderCommand() *cobra.Command {
	var user, date, timeOfDay, content, repeat string

	cmd := &cobra.Command{
		Use:   "add-reminder",
		Short: "Schedule a one-time or recurring reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" || content == "" {
				return fmt.Errorf("--user and --content are required")
			}
			if !model.ValidDate(date) {
				return fmt.Errorf("--date must be YYYY-MM-DD")
			}
			if !model.ValidTime(timeOfDay) {
				return fmt.Errorf("--time must be HH:MM")
			}
			freq, ok := model.ParseRepeatFrequency(repeat)
			if !ok {
				return fmt.Errorf("--repeat must be none, daily, weekly or monthly")
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			existing, err := s.UserByName(user)
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("no user named %q; add-user first", user)
			}

			r := &model.Reminder{
				UserName:        user,
				ScheduledDate:   date,
				ScheduledTime:   timeOfDay,
				Content:         content,
				RepeatFrequency: freq,
			}
			if err := s.AddReminder(r); err != nil {
				return err
			}
			fmt.Printf("added reminder %d for %s at %s %s (%s)\n", r.ID, user, date, timeOfDay, freq)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user the reminder belongs to")
	cmd.Flags().StringVar(&date, "date", "", "first execution date, YYYY-MM-DD")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "execution time of day, HH:MM")
	cmd.Flags().StringVar(&content, "content", "", "text spoken during the call")
	cmd.Flags().StringVar(&repeat, "repeat", "none", "none, daily, weekly or monthly")
	return cmd
}

func newListUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			users, err := s.Users()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPHONE")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\n", u.Name, u.PhoneNumber)
			}
			return w.Flush()
		},
	}
}

func newListRemindersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-reminders",
		Short: "List all reminders and their state",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			reminders, err := s.Reminders()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSER\tDATE\tTIME\tREPEAT\tSTATUS\tLAST CALLED\tCONTENT")
			for _, r := range reminders {
				lastCalled := "never"
				if r.LastCalledAt != nil {
					lastCalled = r.LastCalledAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.UserName, r.ScheduledDate, r.ScheduledTime,
					r.RepeatFrequency, r.Status, lastCalled, r.Content)
			}
			return w.Flush()
		},
	}
}
