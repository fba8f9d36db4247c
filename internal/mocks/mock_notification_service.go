package mocks

import (
	"sync"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// SentMessage captures one SendSMS call
type SentMessage struct {
	To      string
	Message string
}

// MockNotificationService implements domain.NotificationService
// interface for testing. Sent messages are kept for assertions.
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error

	mu   sync.Mutex
	sent []SentMessage
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS sends an SMS message
func (m *MockNotificationService) SendSMS(to, message string) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentMessage{To: to, Message: message})
	m.mu.Unlock()

	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: success (no actual SMS sent in tests)
	return nil
}

// Sent returns every captured message
func (m *MockNotificationService) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
