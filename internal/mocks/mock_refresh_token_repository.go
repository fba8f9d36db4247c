package mocks

import (
	"context"
	"time"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository interface for testing
type MockRefreshTokenRepository struct {
	CreateFunc           func(ctx context.Context, token *domain.RefreshToken) error
	FindByTokenFunc      func(ctx context.Context, token string) (*domain.RefreshToken, error)
	RevokeFunc           func(ctx context.Context, token string) error
	RevokeAllForUserFunc func(ctx context.Context, userID uint) (int64, error)
	DeleteExpiredFunc    func(ctx context.Context, before time.Time) (int64, error)
}

// NewMockRefreshTokenRepository creates a new MockRefreshTokenRepository with default behaviors
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

// Create stores a refresh token
func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	// Default behavior: success
	token.ID = 1
	return nil
}

// FindByToken looks up a token by value
func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	// Default behavior: unknown token
	return nil, domain.ErrRefreshTokenInvalid
}

// Revoke marks a token revoked
func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// RevokeAllForUser revokes every live token of a user
func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	if m.RevokeAllForUserFunc != nil {
		return m.RevokeAllForUserFunc(ctx, userID)
	}
	// Default behavior: nothing to revoke
	return 0, nil
}

// DeleteExpired removes tokens past their expiry
func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, before)
	}
	// Default behavior: nothing to delete
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)
