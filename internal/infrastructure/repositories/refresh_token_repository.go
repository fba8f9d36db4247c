package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using GORM
type RefreshTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBRefreshToken represents the database model for RefreshToken
type DBRefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	Token     string    `gorm:"uniqueIndex;size:128"`
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBRefreshToken) TableName() string {
	return "refresh_tokens"
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{db: db}
}

// Create implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, token *domain.RefreshToken) error {
	dbToken := &DBRefreshToken{
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		RevokedAt: token.RevokedAt,
	}
	if err := r.db.WithContext(ctx).Create(dbToken).Error; err != nil {
		return err
	}
	token.ID = dbToken.ID
	return nil
}

// FindByToken implements domain.RefreshTokenRepository. An unknown token
// value reports ErrRefreshTokenInvalid; callers never learn whether the
// value ever existed.
func (r *RefreshTokenRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var dbToken DBRefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, err
	}
	return tokenToDomain(&dbToken), nil
}

// Revoke implements domain.RefreshTokenRepository. Revoking an unknown or
// already revoked token affects no rows and returns nil.
func (r *RefreshTokenRepositoryImpl) Revoke(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&DBRefreshToken{}).
		Where("token = ? AND revoked_at IS NULL", token).
		UpdateColumn("revoked_at", time.Now()).Error
}

// RevokeAllForUser implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&DBRefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		UpdateColumn("revoked_at", time.Now())
	return res.RowsAffected, res.Error
}

// DeleteExpired implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&DBRefreshToken{})
	return res.RowsAffected, res.Error
}

// tokenToDomain converts a database refresh token to its domain entity
func tokenToDomain(dbToken *DBRefreshToken) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        dbToken.ID,
		UserID:    dbToken.UserID,
		Token:     dbToken.Token,
		ExpiresAt: dbToken.ExpiresAt,
		RevokedAt: dbToken.RevokedAt,
		CreatedAt: dbToken.CreatedAt,
	}
}
