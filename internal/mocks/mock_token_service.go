package mocks

import (
	"fmt"
	"time"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(user *domain.User, branchIDs []uint, permissions []domain.Permission) (string, error)
	GenerateRefreshTokenFunc func() (string, error)
	GeneratePairFunc         func(user *domain.User, branchIDs []uint, permissions []domain.Permission) (*domain.TokenPair, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	AccessExpirySecondsFunc  func() int64
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token for the user
func (m *MockTokenService) GenerateAccessToken(user *domain.User, branchIDs []uint, permissions []domain.Permission) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(user, branchIDs, permissions)
	}
	// Default behavior: return a mock access token
	return fmt.Sprintf("access_token_user_%d_%s", user.ID, user.Role), nil
}

// GenerateRefreshToken generates an opaque refresh token
func (m *MockTokenService) GenerateRefreshToken() (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc()
	}
	// Default behavior: return a mock refresh token
	return "refresh_token_mock", nil
}

// GeneratePair generates an access and refresh token pair
func (m *MockTokenService) GeneratePair(user *domain.User, branchIDs []uint, permissions []domain.Permission) (*domain.TokenPair, error) {
	if m.GeneratePairFunc != nil {
		return m.GeneratePairFunc(user, branchIDs, permissions)
	}
	// Default behavior: build the pair from the single-token defaults
	accessToken, err := m.GenerateAccessToken(user, branchIDs, permissions)
	if err != nil {
		return nil, err
	}
	refreshToken, err := m.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    900,
	}, nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	// Default behavior: claims for a plain owner session
	now := time.Now()
	return &domain.TokenClaims{
		UserID:      1,
		TenantID:    1,
		BranchIDs:   []uint{1},
		Role:        domain.RoleOwner,
		Permissions: []domain.Permission{domain.PermUsersRead},
		TokenID:     "mock-jti",
		IssuedAt:    now.Unix(),
		ExpiresAt:   now.Add(15 * time.Minute).Unix(),
	}, nil
}

// AccessExpirySeconds reports the configured access token lifetime
func (m *MockTokenService) AccessExpirySeconds() int64 {
	if m.AccessExpirySecondsFunc != nil {
		return m.AccessExpirySecondsFunc()
	}
	// Default behavior: 15 minutes
	return 900
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
