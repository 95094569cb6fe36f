package chat

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/user/healthai/pkg/api"
)

type fakeChatBackend struct {
	history    []*api.Exchange
	historyErr error
	sendErr    error
	block      chan struct{} // when non-nil, Send waits until closed
	sends      atomic.Int32
}

func (f *fakeChatBackend) SendChatMessage(_ context.Context, message, sessionID string) (*api.Exchange, error) {
	n := f.sends.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &api.Exchange{
		ID:        fmt.Sprintf("e%d", n),
		SessionID: sessionID,
		Message:   message,
		Response:  "re: " + message,
		CreatedAt: time.Now(),
	}, nil
}

func (f *fakeChatBackend) ChatHistory(_ context.Context, sessionID string) ([]*api.Exchange, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func TestSessionIDUniquePerController(t *testing.T) {
	backend := &fakeChatBackend{}
	a := New(backend)
	b := New(backend)
	if a.SessionID() == "" {
		t.Fatal("expected non-empty session identifier")
	}
	if a.SessionID() == b.SessionID() {
		t.Error("two controllers must not share a session identifier")
	}
}

func TestInitializeLoadsHistory(t *testing.T) {
	backend := &fakeChatBackend{history: []*api.Exchange{
		{ID: "e1", Message: "hi", Response: "hello"},
		{ID: "e2", Message: "ok", Response: "great"},
	}}
	ctl := New(backend)
	ctl.Initialize(context.Background())

	exchanges := ctl.Exchanges()
	if len(exchanges) != 2 || exchanges[0].ID != "e1" || exchanges[1].ID != "e2" {
		t.Errorf("history not loaded in order: %+v", exchanges)
	}
}

func TestInitializeFailureIsNotFatal(t *testing.T) {
	for _, backendErr := range []error{
		&api.Error{Kind: api.NotFound},
		&api.Error{Kind: api.Transport, Detail: "connection refused"},
	} {
		ctl := New(&fakeChatBackend{historyErr: backendErr})
		ctl.Initialize(context.Background())
		if len(ctl.Exchanges()) != 0 {
			t.Errorf("expected empty transcript, got %d exchanges", len(ctl.Exchanges()))
		}
	}
}

func TestSendAppendsExchange(t *testing.T) {
	ctl := New(&fakeChatBackend{})
	ex, err := ctl.Send(context.Background(), "headache")
	if err != nil {
		t.Fatal(err)
	}
	if ex.Response != "re: headache" {
		t.Errorf("unexpected response: %q", ex.Response)
	}

	exchanges := ctl.Exchanges()
	if len(exchanges) != 1 || exchanges[0].ID != ex.ID {
		t.Errorf("transcript should end with the returned exchange: %+v", exchanges)
	}
}

func TestSendRejectsBlankInput(t *testing.T) {
	backend := &fakeChatBackend{}
	ctl := New(backend)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := ctl.Send(context.Background(), text)
		if !errors.Is(err, ErrEmpty) {
			t.Errorf("expected ErrEmpty for %q, got %v", text, err)
		}
	}
	if backend.sends.Load() != 0 {
		t.Error("blank input must not reach the network")
	}
}

func TestSendSingleFlight(t *testing.T) {
	backend := &fakeChatBackend{block: make(chan struct{})}
	ctl := New(backend)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := ctl.Send(ctx, "a"); err != nil {
			t.Errorf("first send failed: %v", err)
		}
	}()

	// Wait for the first send to be in flight
	deadline := time.After(2 * time.Second)
	for !ctl.Sending() {
		select {
		case <-deadline:
			t.Fatal("first send never became in-flight")
		case <-time.After(time.Millisecond):
		}
	}

	// Second send must be rejected, not queued
	if _, err := ctl.Send(ctx, "b"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(backend.block)
	<-done

	exchanges := ctl.Exchanges()
	if len(exchanges) != 1 {
		t.Fatalf("expected exactly one new exchange, got %d", len(exchanges))
	}
	if exchanges[0].Message != "a" {
		t.Errorf("transcript must end with the accepted send, got %q", exchanges[0].Message)
	}
	if backend.sends.Load() != 1 {
		t.Errorf("expected 1 network send, got %d", backend.sends.Load())
	}
}

func TestSendFailureLeavesTranscript(t *testing.T) {
	backend := &fakeChatBackend{}
	ctl := New(backend)
	ctx := context.Background()

	if _, err := ctl.Send(ctx, "first"); err != nil {
		t.Fatal(err)
	}

	backend.sendErr = &api.Error{Kind: api.Transport, Detail: "timeout"}
	if _, err := ctl.Send(ctx, "second"); !api.IsKind(err, api.Transport) {
		t.Fatalf("expected Transport, got %v", err)
	}

	exchanges := ctl.Exchanges()
	if len(exchanges) != 1 || exchanges[0].Message != "first" {
		t.Errorf("failed send must not mutate the transcript: %+v", exchanges)
	}

	// The single-flight slot is free again after a failure
	backend.sendErr = nil
	if _, err := ctl.Send(ctx, "third"); err != nil {
		t.Fatalf("send after failure should succeed, got %v", err)
	}
}

func TestSendOrderMatchesArrival(t *testing.T) {
	ctl := New(&fakeChatBackend{})
	ctx := context.Background()

	for _, msg := range []string{"one", "two", "three"} {
		if _, err := ctl.Send(ctx, msg); err != nil {
			t.Fatal(err)
		}
	}

	exchanges := ctl.Exchanges()
	want := []string{"one", "two", "three"}
	for i, msg := range want {
		if exchanges[i].Message != msg {
			t.Errorf("position %d: expected %q, got %q", i, msg, exchanges[i].Message)
		}
	}
}

func TestClosedControllerDropsSendResult(t *testing.T) {
	backend := &fakeChatBackend{block: make(chan struct{})}
	ctl := New(backend)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctl.Send(context.Background(), "late")
	}()

	deadline := time.After(2 * time.Second)
	for !ctl.Sending() {
		select {
		case <-deadline:
			t.Fatal("send never became in-flight")
		case <-time.After(time.Millisecond):
		}
	}

	ctl.Close()
	close(backend.block)
	<-done

	if len(ctl.Exchanges()) != 0 {
		t.Error("closed controller must drop the late result")
	}
}
