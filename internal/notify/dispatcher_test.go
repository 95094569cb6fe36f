package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/user/healthai/internal/listctl"
	"github.com/user/healthai/pkg/api"
)

type fakeReminderBackend struct {
	reminders []*api.Reminder
}

func (f *fakeReminderBackend) Reminders(_ context.Context) ([]*api.Reminder, error) {
	out := make([]*api.Reminder, len(f.reminders))
	copy(out, f.reminders)
	return out, nil
}

func (f *fakeReminderBackend) CreateReminder(_ context.Context, input api.ReminderInput) (*api.Reminder, error) {
	return nil, &api.Error{Kind: api.Validation}
}

func (f *fakeReminderBackend) CompleteReminder(_ context.Context, id string) error { return nil }
func (f *fakeReminderBackend) DeleteReminder(_ context.Context, id string) error   { return nil }

func newTestDispatcher(backend *fakeReminderBackend, now time.Time) (*Dispatcher, *[]string) {
	registry := NewRegistry()
	var delivered []string
	registry.Register("test", func(msg string) error {
		delivered = append(delivered, msg)
		return nil
	})

	d := NewDispatcher(listctl.Reminders(backend), registry)
	d.retry = &RetryPolicy{MaxAttempts: 1, InitialDelay: time.Millisecond, Multiplier: 1, MaxDelay: time.Millisecond}
	d.now = func() time.Time { return now }
	return d, &delivered
}

func TestSweepDeliversDueReminders(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	backend := &fakeReminderBackend{reminders: []*api.Reminder{
		{ID: "r1", ReminderType: api.ReminderMedication, Title: "Aspirin", ScheduledTime: now.Add(-time.Minute)},
		{ID: "r2", ReminderType: api.ReminderAppointment, Title: "Dentist", ScheduledTime: now.Add(time.Hour)},
		{ID: "r3", ReminderType: api.ReminderMedication, Title: "Done", ScheduledTime: now.Add(-time.Hour), Completed: true},
	}}
	d, delivered := newTestDispatcher(backend, now)

	if err := d.Sweep(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(*delivered) != 1 {
		t.Fatalf("expected 1 delivery, got %d: %v", len(*delivered), *delivered)
	}
	if !strings.Contains((*delivered)[0], "Aspirin") {
		t.Errorf("unexpected message: %q", (*delivered)[0])
	}
}

func TestSweepDeduplicates(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	backend := &fakeReminderBackend{reminders: []*api.Reminder{
		{ID: "r1", ReminderType: api.ReminderMedication, Title: "Aspirin", ScheduledTime: now.Add(-time.Minute)},
	}}
	d, delivered := newTestDispatcher(backend, now)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := d.Sweep(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if len(*delivered) != 1 {
		t.Errorf("one-shot reminder delivered %d times", len(*delivered))
	}
}

func TestSweepDailyRefiresNextDay(t *testing.T) {
	now := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	backend := &fakeReminderBackend{reminders: []*api.Reminder{
		{ID: "r1", ReminderType: api.ReminderMedication, Title: "Aspirin",
			ScheduledTime: now.Add(-time.Hour), Repeat: api.RepeatDaily},
	}}
	d, delivered := newTestDispatcher(backend, now)
	ctx := context.Background()

	if err := d.Sweep(ctx); err != nil {
		t.Fatal(err)
	}
	if err := d.Sweep(ctx); err != nil {
		t.Fatal(err)
	}
	if len(*delivered) != 1 {
		t.Fatalf("same-day sweeps must deliver once, got %d", len(*delivered))
	}

	d.now = func() time.Time { return now.Add(24 * time.Hour) }
	if err := d.Sweep(ctx); err != nil {
		t.Fatal(err)
	}
	if len(*delivered) != 2 {
		t.Errorf("daily reminder should refire the next day, got %d deliveries", len(*delivered))
	}
}

func TestFormat(t *testing.T) {
	r := &api.Reminder{
		ReminderType:  api.ReminderAppointment,
		Title:         "Dentist",
		Description:   "Bring insurance card",
		ScheduledTime: time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
	}
	msg := Format(r)
	if !strings.Contains(msg, "Appointment reminder") || !strings.Contains(msg, "Dentist") {
		t.Errorf("unexpected message: %q", msg)
	}
	if !strings.Contains(msg, "Bring insurance card") {
		t.Errorf("description missing: %q", msg)
	}
}
