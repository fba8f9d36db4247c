package mocks

import (
	"github.com/sritek/hospital-ops-sub000/domain"
)

// MockPasswordHasher implements domain.PasswordHasher interface for testing
type MockPasswordHasher struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordHasher creates a new MockPasswordHasher with default behaviors
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

// Hash hashes a password
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: reversible fake hash
	return "hashed:" + password, nil
}

// Verify checks a password against a hash
func (m *MockPasswordHasher) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	// Default behavior: match the fake hash format
	return hashedPassword == "hashed:"+password
}

// Compile-time interface compliance verification
var _ domain.PasswordHasher = (*MockPasswordHasher)(nil)
