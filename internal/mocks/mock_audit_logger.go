package mocks

import (
	"context"
	"sync"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockAuditLogger implements domain.AuditLogger interface for testing.
// Logged events are kept for assertions.
type MockAuditLogger struct {
	LogFunc func(ctx context.Context, event *domain.AuditEvent)

	mu     sync.Mutex
	events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger with default behaviors
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// Log records an audit event
func (m *MockAuditLogger) Log(ctx context.Context, event *domain.AuditEvent) {
	if m.LogFunc != nil {
		m.LogFunc(ctx, event)
		return
	}
	// Default behavior: remember the event
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns every logged event
func (m *MockAuditLogger) Events() []*domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}

// EventsFor returns the logged events matching the action
func (m *MockAuditLogger) EventsFor(action domain.AuditAction) []*domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.AuditEvent
	for _, event := range m.events {
		if event.Action == action {
			out = append(out, event)
		}
	}
	return out
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*MockAuditLogger)(nil)
