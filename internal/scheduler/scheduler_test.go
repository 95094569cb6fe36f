package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerFiresHandler(t *testing.T) {
	var fires atomic.Int32
	sched := New("* * * * * *", func() {
		fires.Add(1)
	})
	if err := sched.Start(); err != nil {
		t.Fatal(err)
	}
	defer sched.Stop()

	// Wait up to 2.5 seconds for at least one fire
	deadline := time.After(2500 * time.Millisecond)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			t.Fatalf("handler did not fire within 2.5s, fires=%d", fires.Load())
		case <-ticker.C:
			if fires.Load() > 0 {
				return
			}
		}
	}
}

func TestSchedulerRejectsBadExpression(t *testing.T) {
	sched := New("not a cron expression", func() {})
	if err := sched.Start(); err == nil {
		sched.Stop()
		t.Fatal("expected error for invalid schedule, got nil")
	}
}

func TestSchedulerStandardFiveFieldExpression(t *testing.T) {
	sched := New("*/5 * * * *", func() {})
	if err := sched.Start(); err != nil {
		t.Fatalf("five-field expression should parse: %v", err)
	}
	sched.Stop()
}

func TestSchedulerDescriptorExpression(t *testing.T) {
	sched := New("@every 1m", func() {})
	if err := sched.Start(); err != nil {
		t.Fatalf("descriptor expression should parse: %v", err)
	}
	sched.Stop()
}
