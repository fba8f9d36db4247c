package services

import (
	"fmt"
	"unicode"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// PasswordPolicyImpl implements domain.PasswordPolicy
type PasswordPolicyImpl struct {
	minLength int
	hasher    domain.PasswordHasher
}

// NewPasswordPolicy creates a password policy with the given minimum length
func NewPasswordPolicy(minLength int, hasher domain.PasswordHasher) domain.PasswordPolicy {
	if minLength <= 0 {
		minLength = 8
	}
	return &PasswordPolicyImpl{
		minLength: minLength,
		hasher:    hasher,
	}
}

// Validate implements domain.PasswordPolicy. It collects every violated
// rule so the caller can surface all of them at once.
func (p *PasswordPolicyImpl) Validate(password string) []string {
	var violations []string

	if len([]rune(password)) < p.minLength {
		violations = append(violations, fmt.Sprintf("must be at least %d characters long", p.minLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		violations = append(violations, "must contain at least one uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "must contain at least one lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "must contain at least one digit")
	}
	if !hasSpecial {
		violations = append(violations, "must contain at least one special character")
	}

	return violations
}

// IsReused implements domain.PasswordPolicy. It stops at the first
// matching hash.
func (p *PasswordPolicyImpl) IsReused(password string, recentHashes []string) bool {
	for _, hash := range recentHashes {
		if p.hasher.Verify(hash, password) {
			return true
		}
	}
	return false
}
