package notify

import (
	"errors"
	"testing"
)

func TestRegistryBroadcast(t *testing.T) {
	registry := NewRegistry()

	var terminal, telegram []string
	registry.Register("terminal", func(msg string) error {
		terminal = append(terminal, msg)
		return nil
	})
	registry.Register("telegram", func(msg string) error {
		telegram = append(telegram, msg)
		return nil
	})

	if err := registry.Broadcast("take aspirin"); err != nil {
		t.Fatal(err)
	}
	if len(terminal) != 1 || len(telegram) != 1 {
		t.Errorf("expected delivery to both channels, got %d/%d", len(terminal), len(telegram))
	}
}

func TestRegistryBroadcastNoChannels(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Broadcast("msg"); err == nil {
		t.Fatal("expected error with no channels registered")
	}
}

func TestRegistryBroadcastPartialFailure(t *testing.T) {
	registry := NewRegistry()

	var delivered int
	registry.Register("good", func(msg string) error {
		delivered++
		return nil
	})
	registry.Register("bad", func(msg string) error {
		return errors.New("send failed")
	})

	err := registry.Broadcast("msg")
	if err == nil {
		t.Fatal("expected joined failure")
	}
	if delivered != 1 {
		t.Error("healthy channel must still deliver when another fails")
	}
}
