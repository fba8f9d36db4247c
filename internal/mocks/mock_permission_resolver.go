package mocks

import (
	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockPermissionResolver implements domain.PermissionResolver interface for testing
type MockPermissionResolver struct {
	PermissionsForFunc func(role domain.Role) ([]domain.Permission, error)
	HasAnyFunc         func(role domain.Role, required ...domain.Permission) bool
	HasAllFunc         func(role domain.Role, required ...domain.Permission) bool
	OutranksFunc       func(a, b domain.Role) bool
}

// NewMockPermissionResolver creates a new MockPermissionResolver with default behaviors
func NewMockPermissionResolver() *MockPermissionResolver {
	return &MockPermissionResolver{}
}

// PermissionsFor resolves a role to its capabilities
func (m *MockPermissionResolver) PermissionsFor(role domain.Role) ([]domain.Permission, error) {
	if m.PermissionsForFunc != nil {
		return m.PermissionsForFunc(role)
	}
	// Default behavior: the real table
	perms, ok := domain.PermissionsForRole(role)
	if !ok {
		return nil, domain.ErrUnknownRole
	}
	return perms, nil
}

// HasAny reports whether the role holds any required permission
func (m *MockPermissionResolver) HasAny(role domain.Role, required ...domain.Permission) bool {
	if m.HasAnyFunc != nil {
		return m.HasAnyFunc(role, required...)
	}
	// Default behavior: the real table
	perms, ok := domain.PermissionsForRole(role)
	if !ok {
		return false
	}
	for _, need := range required {
		for _, held := range perms {
			if need == held {
				return true
			}
		}
	}
	return false
}

// HasAll reports whether the role holds every required permission
func (m *MockPermissionResolver) HasAll(role domain.Role, required ...domain.Permission) bool {
	if m.HasAllFunc != nil {
		return m.HasAllFunc(role, required...)
	}
	// Default behavior: the real table
	perms, ok := domain.PermissionsForRole(role)
	if !ok {
		return false
	}
	for _, need := range required {
		found := false
		for _, held := range perms {
			if need == held {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Outranks reports whether role a sits strictly above role b
func (m *MockPermissionResolver) Outranks(a, b domain.Role) bool {
	if m.OutranksFunc != nil {
		return m.OutranksFunc(a, b)
	}
	// Default behavior: the real ranking
	return a.Outranks(b)
}

// Compile-time interface compliance verification
var _ domain.PermissionResolver = (*MockPermissionResolver)(nil)
