package mocks

import (
	"context"
	"time"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockOtpRepository implements domain.OtpRepository interface for testing
type MockOtpRepository struct {
	StoreFunc             func(ctx context.Context, otp *domain.OtpCode) error
	FindFunc              func(ctx context.Context, phone string, purpose domain.OtpPurpose) (*domain.OtpCode, error)
	IncrementAttemptsFunc func(ctx context.Context, phone string, purpose domain.OtpPurpose) (int, error)
	DeleteFunc            func(ctx context.Context, phone string, purpose domain.OtpPurpose) error
	ThrottleSendFunc      func(ctx context.Context, phone string, purpose domain.OtpPurpose) (bool, time.Duration, error)
}

// NewMockOtpRepository creates a new MockOtpRepository with default behaviors
func NewMockOtpRepository() *MockOtpRepository {
	return &MockOtpRepository{}
}

// Store saves a pending code
func (m *MockOtpRepository) Store(ctx context.Context, otp *domain.OtpCode) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, otp)
	}
	// Default behavior: success
	return nil
}

// Find loads the pending code for a pair
func (m *MockOtpRepository) Find(ctx context.Context, phone string, purpose domain.OtpPurpose) (*domain.OtpCode, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, phone, purpose)
	}
	// Default behavior: nothing pending
	return nil, domain.ErrOtpNotFound
}

// IncrementAttempts bumps the attempt counter
func (m *MockOtpRepository) IncrementAttempts(ctx context.Context, phone string, purpose domain.OtpPurpose) (int, error) {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, phone, purpose)
	}
	// Default behavior: first attempt
	return 1, nil
}

// Delete discards the pending code and its counter
func (m *MockOtpRepository) Delete(ctx context.Context, phone string, purpose domain.OtpPurpose) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, phone, purpose)
	}
	// Default behavior: success
	return nil
}

// ThrottleSend reserves a send slot
func (m *MockOtpRepository) ThrottleSend(ctx context.Context, phone string, purpose domain.OtpPurpose) (bool, time.Duration, error) {
	if m.ThrottleSendFunc != nil {
		return m.ThrottleSendFunc(ctx, phone, purpose)
	}
	// Default behavior: allowed
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OtpRepository = (*MockOtpRepository)(nil)
