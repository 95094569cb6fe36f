// Package scheduler drives the periodic due-reminder sweep.
package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Handler is the callback invoked on each sweep tick.
type Handler func()

// Scheduler fires a handler on a cron schedule.
type Scheduler struct {
	schedule string
	handler  Handler
	cron     *cron.Cron
}

// cronParser accepts both standard 5-field cron expressions and 6-field
// expressions with an optional seconds field.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// New creates a Scheduler that calls handler per the cron expression
// schedule (e.g. "@every 1m" or "*/5 * * * *").
func New(schedule string, handler Handler) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		handler:  handler,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the sweep entry and starts the cron ticker.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		slog.Debug("sweep firing", "schedule", s.schedule)
		s.handler()
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("sweep scheduled", "schedule", s.schedule)
	return nil
}

// Stop stops the cron ticker.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
