package mocks

import (
	"context"
	"time"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	FindByIDFunc              func(ctx context.Context, id uint) (*domain.User, error)
	FindByPhoneFunc           func(ctx context.Context, tenantID uint, phone string) (*domain.User, error)
	FindByPhoneGlobalFunc     func(ctx context.Context, phone string) (*domain.User, error)
	EmailExistsFunc           func(ctx context.Context, email string) (bool, error)
	IncrementFailedLoginsFunc func(ctx context.Context, userID uint) (int, error)
	LockUntilFunc             func(ctx context.Context, userID uint, until time.Time) error
	RecordLoginSuccessFunc    func(ctx context.Context, userID uint, at time.Time) error
	ClearLockoutFunc          func(ctx context.Context, userID uint) error
	UpdatePasswordFunc        func(ctx context.Context, userID uint, passwordHash string) error
	BranchIDsFunc             func(ctx context.Context, userID uint) ([]uint, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByPhone finds a user by tenant and phone
func (m *MockUserRepository) FindByPhone(ctx context.Context, tenantID uint, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, tenantID, phone)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByPhoneGlobal finds a user by phone across all tenants
func (m *MockUserRepository) FindByPhoneGlobal(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneGlobalFunc != nil {
		return m.FindByPhoneGlobalFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// EmailExists reports whether any user has the email
func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.EmailExistsFunc != nil {
		return m.EmailExistsFunc(ctx, email)
	}
	// Default behavior: free
	return false, nil
}

// IncrementFailedLogins bumps the failed-login counter
func (m *MockUserRepository) IncrementFailedLogins(ctx context.Context, userID uint) (int, error) {
	if m.IncrementFailedLoginsFunc != nil {
		return m.IncrementFailedLoginsFunc(ctx, userID)
	}
	// Default behavior: first failure
	return 1, nil
}

// LockUntil sets the lockout deadline
func (m *MockUserRepository) LockUntil(ctx context.Context, userID uint, until time.Time) error {
	if m.LockUntilFunc != nil {
		return m.LockUntilFunc(ctx, userID, until)
	}
	// Default behavior: success
	return nil
}

// RecordLoginSuccess stamps the login and clears failure state
func (m *MockUserRepository) RecordLoginSuccess(ctx context.Context, userID uint, at time.Time) error {
	if m.RecordLoginSuccessFunc != nil {
		return m.RecordLoginSuccessFunc(ctx, userID, at)
	}
	// Default behavior: success
	return nil
}

// ClearLockout clears the counter and deadline
func (m *MockUserRepository) ClearLockout(ctx context.Context, userID uint) error {
	if m.ClearLockoutFunc != nil {
		return m.ClearLockoutFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// UpdatePassword stores a new password hash
func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, passwordHash)
	}
	// Default behavior: success
	return nil
}

// BranchIDs lists the user's branch memberships
func (m *MockUserRepository) BranchIDs(ctx context.Context, userID uint) ([]uint, error) {
	if m.BranchIDsFunc != nil {
		return m.BranchIDsFunc(ctx, userID)
	}
	// Default behavior: no memberships
	return []uint{}, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
