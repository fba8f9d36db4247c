package audit

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// captureSink collects emitted events on a channel for assertions
type captureSink struct {
	events chan *domain.AuditEvent
}

func newCaptureSink() *captureSink {
	return &captureSink{events: make(chan *domain.AuditEvent, 16)}
}

func (s *captureSink) Emit(_ context.Context, event *domain.AuditEvent) error {
	s.events <- event
	return nil
}

// blockingSink parks inside Emit until released, so tests can fill the
// dispatcher buffer deterministically
type blockingSink struct {
	entered chan struct{}
	release chan struct{}
	events  chan *domain.AuditEvent
}

func newBlockingSink() *blockingSink {
	return &blockingSink{
		entered: make(chan struct{}, 8),
		release: make(chan struct{}),
		events:  make(chan *domain.AuditEvent, 16),
	}
}

func (s *blockingSink) Emit(_ context.Context, event *domain.AuditEvent) error {
	s.entered <- struct{}{}
	<-s.release
	s.events <- event
	return nil
}

func waitEvent(t *testing.T, ch chan *domain.AuditEvent) *domain.AuditEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
		return nil
	}
}

func TestDispatcher_DeliversToSink(t *testing.T) {
	sink := newCaptureSink()
	d := NewDispatcher(sink, 8, zap.NewNop())
	defer d.Close()

	d.Log(context.Background(), domain.NewAuditEvent(domain.AuditLoginSucceeded).
		WithUser(3, 7).
		WithPhone("**********4321"))

	event := waitEvent(t, sink.events)
	if event.Action != domain.AuditLoginSucceeded {
		t.Errorf("expected action %s, got %s", domain.AuditLoginSucceeded, event.Action)
	}
	if event.TenantID != 3 || event.UserID != 7 {
		t.Errorf("expected user binding 3/7, got %d/%d", event.TenantID, event.UserID)
	}
	if event.ID == "" {
		t.Error("expected dispatcher to stamp an event ID")
	}
	if event.Timestamp.IsZero() {
		t.Error("expected event timestamp")
	}
}

func TestDispatcher_PreservesExistingID(t *testing.T) {
	sink := newCaptureSink()
	d := NewDispatcher(sink, 8, zap.NewNop())
	defer d.Close()

	event := domain.NewAuditEvent(domain.AuditLogout)
	event.ID = "fixed-id"
	d.Log(context.Background(), event)

	if got := waitEvent(t, sink.events); got.ID != "fixed-id" {
		t.Errorf("expected ID preserved, got %q", got.ID)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := newBlockingSink()
	d := NewDispatcher(sink, 1, zap.NewNop())

	// First event occupies the sink; second fills the buffer.
	d.Log(context.Background(), domain.NewAuditEvent(domain.AuditLoginFailed))
	<-sink.entered
	d.Log(context.Background(), domain.NewAuditEvent(domain.AuditLoginFailed))
	d.Log(context.Background(), domain.NewAuditEvent(domain.AuditLoginFailed))

	if dropped := d.Dropped(); dropped != 1 {
		t.Errorf("expected 1 dropped event, got %d", dropped)
	}

	close(sink.release)
	d.Close()

	delivered := 0
	for {
		select {
		case <-sink.events:
			delivered++
			continue
		default:
		}
		break
	}
	if delivered != 2 {
		t.Errorf("expected 2 delivered events, got %d", delivered)
	}
}

func TestDispatcher_CloseDrainsBuffer(t *testing.T) {
	sink := newCaptureSink()
	d := NewDispatcher(sink, 8, zap.NewNop())

	for i := 0; i < 3; i++ {
		d.Log(context.Background(), domain.NewAuditEvent(domain.AuditOtpRequested))
	}
	d.Close()

	for i := 0; i < 3; i++ {
		waitEvent(t, sink.events)
	}

	// Intake is shut; nothing new is accepted or counted as dropped.
	d.Log(context.Background(), domain.NewAuditEvent(domain.AuditOtpRequested))
	if dropped := d.Dropped(); dropped != 0 {
		t.Errorf("expected no drops, got %d", dropped)
	}
	select {
	case event := <-sink.events:
		t.Errorf("unexpected event after close: %v", event.Action)
	default:
	}
}

func TestDispatcher_NilReceiverIsSafe(t *testing.T) {
	var d *Dispatcher
	d.Log(context.Background(), domain.NewAuditEvent(domain.AuditLogout))
	d.Close()
	if d.Dropped() != 0 {
		t.Error("expected zero drops on nil dispatcher")
	}
}
