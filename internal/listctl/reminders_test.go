package listctl

import (
	"context"
	"testing"
	"time"

	"github.com/user/healthai/pkg/api"
)

type fakeReminderBackend struct {
	reminders     []*api.Reminder
	listCalls     int
	completeCalls int
}

func (f *fakeReminderBackend) Reminders(_ context.Context) ([]*api.Reminder, error) {
	f.listCalls++
	out := make([]*api.Reminder, len(f.reminders))
	copy(out, f.reminders)
	return out, nil
}

func (f *fakeReminderBackend) CreateReminder(_ context.Context, input api.ReminderInput) (*api.Reminder, error) {
	r := &api.Reminder{
		ID:            "srv-new",
		ReminderType:  input.ReminderType,
		Title:         input.Title,
		ScheduledTime: input.ScheduledTime,
		Repeat:        input.Repeat,
	}
	f.reminders = append(f.reminders, r)
	return r, nil
}

func (f *fakeReminderBackend) CompleteReminder(_ context.Context, id string) error {
	f.completeCalls++
	for _, r := range f.reminders {
		if r.ID == id {
			r.Completed = true
			return nil
		}
	}
	return &api.Error{Kind: api.NotFound}
}

func (f *fakeReminderBackend) DeleteReminder(_ context.Context, id string) error {
	for i, r := range f.reminders {
		if r.ID == id {
			f.reminders = append(f.reminders[:i], f.reminders[i+1:]...)
			return nil
		}
	}
	return &api.Error{Kind: api.NotFound}
}

func TestReminderValidation(t *testing.T) {
	res := &ReminderResource{}
	when := time.Now().Add(time.Hour)

	valid := api.ReminderInput{
		ReminderType:  api.ReminderMedication,
		Title:         "Aspirin",
		ScheduledTime: when,
		Repeat:        api.RepeatDaily,
	}
	if err := res.Validate(valid); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	cases := []api.ReminderInput{
		{ReminderType: "sleep", Title: "x", ScheduledTime: when, Repeat: api.RepeatNone},
		{ReminderType: api.ReminderMedication, Title: "  ", ScheduledTime: when, Repeat: api.RepeatNone},
		{ReminderType: api.ReminderMedication, Title: "x", Repeat: api.RepeatNone},
		{ReminderType: api.ReminderMedication, Title: "x", ScheduledTime: when, Repeat: "hourly"},
	}
	for i, input := range cases {
		if err := res.Validate(input); !api.IsKind(err, api.Validation) {
			t.Errorf("case %d: expected Validation, got %v", i, err)
		}
	}
}

func TestCompleteReminderTransition(t *testing.T) {
	backend := &fakeReminderBackend{reminders: []*api.Reminder{
		{ID: "r1", ReminderType: api.ReminderMedication, Title: "Aspirin"},
	}}
	ctl := Reminders(backend)
	ctx := context.Background()

	if err := ctl.Load(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if err := ctl.Transition(ctx, "r1", ActionComplete); err != nil {
		t.Fatal(err)
	}

	items := ctl.Items()
	if len(items) != 1 || !items[0].Completed {
		t.Fatalf("expected completed reminder after reload, got %+v", items)
	}
	if backend.completeCalls != 1 {
		t.Errorf("expected 1 complete call, got %d", backend.completeCalls)
	}
}

func TestCompleteIsIdempotentLocally(t *testing.T) {
	backend := &fakeReminderBackend{reminders: []*api.Reminder{
		{ID: "r1", ReminderType: api.ReminderMedication, Title: "Aspirin", Completed: true},
	}}
	ctl := Reminders(backend)
	ctx := context.Background()

	if err := ctl.Load(ctx, ""); err != nil {
		t.Fatal(err)
	}

	err := ctl.Transition(ctx, "r1", ActionComplete)
	if !api.IsKind(err, api.Validation) {
		t.Fatalf("expected local Validation rejection, got %v", err)
	}
	if backend.completeCalls != 0 {
		t.Error("already-completed reminder must not reach the network")
	}
	if backend.listCalls != 1 {
		t.Error("rejected transition must not trigger a reload")
	}
}

func TestTransitionUnknownAction(t *testing.T) {
	backend := &fakeReminderBackend{reminders: []*api.Reminder{
		{ID: "r1", Title: "Aspirin"},
	}}
	ctl := Reminders(backend)
	ctx := context.Background()

	if err := ctl.Load(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if err := ctl.Transition(ctx, "r1", "snooze"); !api.IsKind(err, api.Validation) {
		t.Fatalf("expected Validation for unknown action, got %v", err)
	}
}

func TestTransitionUncachedRecord(t *testing.T) {
	backend := &fakeReminderBackend{}
	ctl := Reminders(backend)
	ctx := context.Background()

	if err := ctl.Load(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if err := ctl.Transition(ctx, "ghost", ActionComplete); !api.IsKind(err, api.NotFound) {
		t.Fatalf("expected NotFound for uncached record, got %v", err)
	}
	if backend.completeCalls != 0 {
		t.Error("uncached record must not reach the network")
	}
}

func TestActiveCompletedViews(t *testing.T) {
	backend := &fakeReminderBackend{reminders: []*api.Reminder{
		{ID: "r1", Title: "a", Completed: false},
		{ID: "r2", Title: "b", Completed: true},
		{ID: "r3", Title: "c", Completed: false},
	}}
	ctl := Reminders(backend)
	if err := ctl.Load(context.Background(), ""); err != nil {
		t.Fatal(err)
	}

	active := ctl.FilteredBy(func(r *api.Reminder) bool { return !r.Completed })
	if len(active) != 2 {
		t.Errorf("expected 2 active reminders, got %d", len(active))
	}
	completed := ctl.FilteredBy(func(r *api.Reminder) bool { return r.Completed })
	if len(completed) != 1 {
		t.Errorf("expected 1 completed reminder, got %d", len(completed))
	}
}
