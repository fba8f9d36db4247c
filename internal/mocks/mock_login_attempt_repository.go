package mocks

import (
	"context"
	"sync"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockLoginAttemptRepository implements domain.LoginAttemptRepository
// interface for testing. Recorded attempts are kept for assertions.
type MockLoginAttemptRepository struct {
	RecordFunc func(ctx context.Context, attempt *domain.LoginAttempt) error

	mu       sync.Mutex
	attempts []*domain.LoginAttempt
}

// NewMockLoginAttemptRepository creates a new MockLoginAttemptRepository with default behaviors
func NewMockLoginAttemptRepository() *MockLoginAttemptRepository {
	return &MockLoginAttemptRepository{}
}

// Record stores a login attempt
func (m *MockLoginAttemptRepository) Record(ctx context.Context, attempt *domain.LoginAttempt) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, attempt)
	}
	// Default behavior: remember the attempt
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, attempt)
	return nil
}

// Attempts returns every recorded attempt
func (m *MockLoginAttemptRepository) Attempts() []*domain.LoginAttempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.LoginAttempt, len(m.attempts))
	copy(out, m.attempts)
	return out
}

// Compile-time interface compliance verification
var _ domain.LoginAttemptRepository = (*MockLoginAttemptRepository)(nil)
