package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/user/healthai/internal/listctl"
	"github.com/user/healthai/pkg/api"
)

// Dispatcher sweeps the reminders list and delivers each due,
// incomplete reminder once. "Due" means the scheduled time has passed.
// Delivery is deduplicated per reminder per occurrence day, so daily
// and weekly reminders fire again on later sweeps while one-shot
// reminders fire once per process.
type Dispatcher struct {
	reminders *listctl.Controller[*api.Reminder, api.ReminderInput]
	registry  *Registry
	retry     *RetryPolicy
	now       func() time.Time

	mu       sync.Mutex
	notified map[string]bool
}

// NewDispatcher creates a Dispatcher over the given reminders
// controller and delivery registry.
func NewDispatcher(reminders *listctl.Controller[*api.Reminder, api.ReminderInput], registry *Registry) *Dispatcher {
	return &Dispatcher{
		reminders: reminders,
		registry:  registry,
		retry:     DefaultRetryPolicy(),
		now:       time.Now,
		notified:  make(map[string]bool),
	}
}

// Sweep reloads the reminders cache and delivers anything newly due.
// The reload goes through the list controller, so the sweep always
// works from backend truth rather than a locally patched view.
func (d *Dispatcher) Sweep(ctx context.Context) error {
	if err := d.reminders.Reload(ctx); err != nil {
		return fmt.Errorf("reload reminders: %w", err)
	}

	now := d.now()
	due := d.reminders.FilteredBy(func(r *api.Reminder) bool {
		return !r.Completed && !r.ScheduledTime.After(now)
	})

	for _, reminder := range due {
		key := dedupKey(reminder, now)

		d.mu.Lock()
		seen := d.notified[key]
		d.mu.Unlock()
		if seen {
			continue
		}

		message := Format(reminder)
		if err := d.retry.Execute(func() error {
			return d.registry.Broadcast(message)
		}); err != nil {
			slog.Error("reminder delivery failed", "reminder_id", reminder.ID, "error", err)
			continue
		}

		d.mu.Lock()
		d.notified[key] = true
		d.mu.Unlock()
		slog.Info("reminder delivered", "reminder_id", reminder.ID, "title", reminder.Title)
	}
	return nil
}

// dedupKey scopes deduplication to the recurrence period.
func dedupKey(r *api.Reminder, now time.Time) string {
	switch r.Repeat {
	case api.RepeatDaily:
		return r.ID + ":" + now.Format("2006-01-02")
	case api.RepeatWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%s:%d-w%d", r.ID, year, week)
	default:
		return r.ID
	}
}

// Format renders a reminder as a notification message.
func Format(r *api.Reminder) string {
	label := "Reminder"
	switch r.ReminderType {
	case api.ReminderMedication:
		label = "Medication reminder"
	case api.ReminderAppointment:
		label = "Appointment reminder"
	}
	msg := fmt.Sprintf("%s: %s (scheduled %s)", label, r.Title, r.ScheduledTime.Format("Mon Jan 2 15:04"))
	if r.Description != "" {
		msg += "\n" + r.Description
	}
	return msg
}
