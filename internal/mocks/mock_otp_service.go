package mocks

import (
	"context"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockOtpService implements domain.OtpService interface for testing
type MockOtpService struct {
	RequestFunc func(ctx context.Context, phone string, purpose domain.OtpPurpose) error
	VerifyFunc  func(ctx context.Context, phone string, purpose domain.OtpPurpose, code string) error
}

// NewMockOtpService creates a new MockOtpService with default behaviors
func NewMockOtpService() *MockOtpService {
	return &MockOtpService{}
}

// Request generates and delivers a code
func (m *MockOtpService) Request(ctx context.Context, phone string, purpose domain.OtpPurpose) error {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, phone, purpose)
	}
	// Default behavior: success
	return nil
}

// Verify checks a submitted code
func (m *MockOtpService) Verify(ctx context.Context, phone string, purpose domain.OtpPurpose, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, purpose, code)
	}
	// Default behavior: valid
	return nil
}

// Compile-time interface compliance verification
var _ domain.OtpService = (*MockOtpService)(nil)
