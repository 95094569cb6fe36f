package listctl

import (
	"context"
	"strings"

	"github.com/user/healthai/pkg/api"
)

// ActionComplete marks a reminder done. The only transition reminders
// support; it flips completed false→true exactly once.
const ActionComplete = "complete"

// ReminderBackend is the slice of the API the reminders resource needs.
type ReminderBackend interface {
	Reminders(ctx context.Context) ([]*api.Reminder, error)
	CreateReminder(ctx context.Context, input api.ReminderInput) (*api.Reminder, error)
	CompleteReminder(ctx context.Context, id string) error
	DeleteReminder(ctx context.Context, id string) error
}

// ReminderResource adapts the reminders API to the generic controller.
// The backend offers no server-side filter for reminders, so the filter
// value is ignored; type/status views are derived client-side via
// FilteredBy.
type ReminderResource struct {
	backend ReminderBackend
}

// Reminders returns a controller over the reminders list.
func Reminders(backend ReminderBackend) *Controller[*api.Reminder, api.ReminderInput] {
	return New[*api.Reminder, api.ReminderInput](&ReminderResource{backend: backend})
}

func (r *ReminderResource) List(ctx context.Context, _ string) ([]*api.Reminder, error) {
	return r.backend.Reminders(ctx)
}

func (r *ReminderResource) Create(ctx context.Context, input api.ReminderInput) error {
	_, err := r.backend.CreateReminder(ctx, input)
	return err
}

func (r *ReminderResource) Remove(ctx context.Context, id string) error {
	return r.backend.DeleteReminder(ctx, id)
}

func (r *ReminderResource) Validate(input api.ReminderInput) error {
	if input.ReminderType != api.ReminderMedication && input.ReminderType != api.ReminderAppointment {
		return &api.Error{Kind: api.Validation, Detail: "reminder type must be medication or appointment"}
	}
	if strings.TrimSpace(input.Title) == "" {
		return &api.Error{Kind: api.Validation, Detail: "title is required"}
	}
	if input.ScheduledTime.IsZero() {
		return &api.Error{Kind: api.Validation, Detail: "scheduled time is required"}
	}
	switch input.Repeat {
	case api.RepeatNone, api.RepeatDaily, api.RepeatWeekly:
	default:
		return &api.Error{Kind: api.Validation, Detail: "repeat must be none, daily, or weekly"}
	}
	return nil
}

func (r *ReminderResource) ID(record *api.Reminder) string { return record.ID }

func (r *ReminderResource) Transition(ctx context.Context, id, action string) error {
	if action != ActionComplete {
		return &api.Error{Kind: api.Validation, Detail: "unknown action " + action}
	}
	return r.backend.CompleteReminder(ctx, id)
}

// AllowTransition rejects completing an already-completed reminder so
// the repeat request never reaches the network.
func (r *ReminderResource) AllowTransition(record *api.Reminder, action string) error {
	if action != ActionComplete {
		return &api.Error{Kind: api.Validation, Detail: "unknown action " + action}
	}
	if record.Completed {
		return &api.Error{Kind: api.Validation, Detail: "reminder already completed"}
	}
	return nil
}

var (
	_ Resource[*api.Reminder, api.ReminderInput] = (*ReminderResource)(nil)
	_ Transitioner[*api.Reminder]                = (*ReminderResource)(nil)
)
