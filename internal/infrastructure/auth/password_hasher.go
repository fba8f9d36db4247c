package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// PasswordHasherImpl implements domain.PasswordHasher using bcrypt
type PasswordHasherImpl struct {
	cost int
}

// NewPasswordHasher creates a bcrypt hasher. Costs outside bcrypt's
// supported range are replaced with the library default.
func NewPasswordHasher(cost int) domain.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasherImpl{cost: cost}
}

// Hash implements domain.PasswordHasher
func (p *PasswordHasherImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordHasher. A malformed stored hash
// verifies as false rather than failing.
func (p *PasswordHasherImpl) Verify(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
