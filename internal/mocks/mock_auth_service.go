package mocks

import (
	"context"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, input *domain.RegisterInput) (*domain.RegistrationResult, error)
	LoginFunc          func(ctx context.Context, input *domain.LoginInput) (*domain.SessionResult, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (*domain.SessionResult, error)
	LogoutFunc         func(ctx context.Context, refreshToken string) error
	LogoutAllFunc      func(ctx context.Context, userID uint) (int64, error)
	RequestOtpFunc     func(ctx context.Context, phone string, purpose domain.OtpPurpose) error
	VerifyOtpFunc      func(ctx context.Context, phone string, purpose domain.OtpPurpose, code string) error
	ResetPasswordFunc  func(ctx context.Context, input *domain.ResetPasswordInput) error
	ChangePasswordFunc func(ctx context.Context, userID uint, currentPassword, newPassword string) error
	GetProfileFunc     func(ctx context.Context, userID uint) (*domain.UserProfile, error)
	UnlockAccountFunc  func(ctx context.Context, actorID, targetUserID uint) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new tenant with its owner
func (m *MockAuthService) Register(ctx context.Context, input *domain.RegisterInput) (*domain.RegistrationResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	// Default behavior: minimal successful registration
	return &domain.RegistrationResult{
		Tenant: &domain.Tenant{ID: 1, Name: input.TenantName, Slug: "tenant-1", IsActive: true},
		Branch: &domain.Branch{ID: 1, TenantID: 1, Name: input.BranchName, IsActive: true},
		Owner: &domain.UserProfile{
			ID:       1,
			TenantID: 1,
			Phone:    input.Phone,
			FullName: input.FullName,
			Role:     domain.RoleOwner,
			IsActive: true,
		},
	}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, input *domain.LoginInput) (*domain.SessionResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, input)
	}
	// Default behavior: generic failure
	return nil, domain.ErrInvalidCredentials
}

// Refresh exchanges a refresh token for a new access token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.SessionResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	// Default behavior: unknown token
	return nil, domain.ErrRefreshTokenInvalid
}

// Logout revokes one refresh token
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	// Default behavior: success
	return nil
}

// LogoutAll revokes every refresh token of a user
func (m *MockAuthService) LogoutAll(ctx context.Context, userID uint) (int64, error) {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	// Default behavior: nothing to revoke
	return 0, nil
}

// RequestOtp requests a one-time code
func (m *MockAuthService) RequestOtp(ctx context.Context, phone string, purpose domain.OtpPurpose) error {
	if m.RequestOtpFunc != nil {
		return m.RequestOtpFunc(ctx, phone, purpose)
	}
	// Default behavior: success
	return nil
}

// VerifyOtp verifies a one-time code
func (m *MockAuthService) VerifyOtp(ctx context.Context, phone string, purpose domain.OtpPurpose, code string) error {
	if m.VerifyOtpFunc != nil {
		return m.VerifyOtpFunc(ctx, phone, purpose, code)
	}
	// Default behavior: valid
	return nil
}

// ResetPassword resets a forgotten password via OTP
func (m *MockAuthService) ResetPassword(ctx context.Context, input *domain.ResetPasswordInput) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, input)
	}
	// Default behavior: success
	return nil
}

// ChangePassword rotates the password of a signed-in user
func (m *MockAuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, currentPassword, newPassword)
	}
	// Default behavior: success
	return nil
}

// GetProfile loads the sanitized profile of a user
func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// UnlockAccount clears another user's lockout
func (m *MockAuthService) UnlockAccount(ctx context.Context, actorID, targetUserID uint) error {
	if m.UnlockAccountFunc != nil {
		return m.UnlockAccountFunc(ctx, actorID, targetUserID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
