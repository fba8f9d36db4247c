package mocks

import (
	"context"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockPasswordHistoryRepository implements domain.PasswordHistoryRepository interface for testing
type MockPasswordHistoryRepository struct {
	AddFunc          func(ctx context.Context, userID uint, passwordHash string) error
	RecentHashesFunc func(ctx context.Context, userID uint, limit int) ([]string, error)
}

// NewMockPasswordHistoryRepository creates a new MockPasswordHistoryRepository with default behaviors
func NewMockPasswordHistoryRepository() *MockPasswordHistoryRepository {
	return &MockPasswordHistoryRepository{}
}

// Add appends a hash to the history
func (m *MockPasswordHistoryRepository) Add(ctx context.Context, userID uint, passwordHash string) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, passwordHash)
	}
	// Default behavior: success
	return nil
}

// RecentHashes returns the newest hashes first
func (m *MockPasswordHistoryRepository) RecentHashes(ctx context.Context, userID uint, limit int) ([]string, error) {
	if m.RecentHashesFunc != nil {
		return m.RecentHashesFunc(ctx, userID, limit)
	}
	// Default behavior: empty history
	return []string{}, nil
}

// Compile-time interface compliance verification
var _ domain.PasswordHistoryRepository = (*MockPasswordHistoryRepository)(nil)
