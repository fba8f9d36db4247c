package mocks

import (
	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockPasswordPolicy implements domain.PasswordPolicy interface for testing
type MockPasswordPolicy struct {
	ValidateFunc func(password string) []string
	IsReusedFunc func(password string, recentHashes []string) bool
}

// NewMockPasswordPolicy creates a new MockPasswordPolicy with default behaviors
func NewMockPasswordPolicy() *MockPasswordPolicy {
	return &MockPasswordPolicy{}
}

// Validate checks a password against the policy rules
func (m *MockPasswordPolicy) Validate(password string) []string {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(password)
	}
	// Default behavior: acceptable
	return nil
}

// IsReused checks a password against recent hashes
func (m *MockPasswordPolicy) IsReused(password string, recentHashes []string) bool {
	if m.IsReusedFunc != nil {
		return m.IsReusedFunc(password, recentHashes)
	}
	// Default behavior: fresh
	return false
}

// Compile-time interface compliance verification
var _ domain.PasswordPolicy = (*MockPasswordPolicy)(nil)
