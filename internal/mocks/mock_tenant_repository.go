package mocks

import (
	"context"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockTenantRepository implements domain.TenantRepository interface for testing
type MockTenantRepository struct {
	RegisterFunc       func(ctx context.Context, reg *domain.Registration) error
	FindTenantByIDFunc func(ctx context.Context, id uint) (*domain.Tenant, error)
	SlugExistsFunc     func(ctx context.Context, slug string) (bool, error)
}

// NewMockTenantRepository creates a new MockTenantRepository with default behaviors
func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{}
}

// Register persists a full registration
func (m *MockTenantRepository) Register(ctx context.Context, reg *domain.Registration) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	// Default behavior: assign IDs as the database would
	reg.Tenant.ID = 1
	reg.Branch.ID = 1
	reg.Branch.TenantID = 1
	reg.Owner.ID = 1
	reg.Owner.TenantID = 1
	return nil
}

// FindTenantByID finds a tenant by ID
func (m *MockTenantRepository) FindTenantByID(ctx context.Context, id uint) (*domain.Tenant, error) {
	if m.FindTenantByIDFunc != nil {
		return m.FindTenantByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrTenantNotFound
}

// SlugExists reports whether a slug is taken
func (m *MockTenantRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.SlugExistsFunc != nil {
		return m.SlugExistsFunc(ctx, slug)
	}
	// Default behavior: free
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.TenantRepository = (*MockTenantRepository)(nil)
