package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// PasswordHistoryRepositoryImpl implements domain.PasswordHistoryRepository using GORM
type PasswordHistoryRepositoryImpl struct {
	db *gorm.DB
}

// DBPasswordHistory represents the database model for PasswordHistory.
// The table is append-only.
type DBPasswordHistory struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index"`
	PasswordHash string `gorm:"column:password"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBPasswordHistory) TableName() string {
	return "password_history"
}

// NewPasswordHistoryRepository creates a new password history repository
func NewPasswordHistoryRepository(db *gorm.DB) domain.PasswordHistoryRepository {
	return &PasswordHistoryRepositoryImpl{db: db}
}

// Add implements domain.PasswordHistoryRepository
func (r *PasswordHistoryRepositoryImpl) Add(ctx context.Context, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Create(&DBPasswordHistory{
		UserID:       userID,
		PasswordHash: passwordHash,
	}).Error
}

// RecentHashes implements domain.PasswordHistoryRepository. Hashes come
// back most recent first; the id tiebreak keeps same-timestamp rows ordered.
func (r *PasswordHistoryRepositoryImpl) RecentHashes(ctx context.Context, userID uint, limit int) ([]string, error) {
	var hashes []string
	err := r.db.WithContext(ctx).Model(&DBPasswordHistory{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Pluck("password", &hashes).Error
	if err != nil {
		return nil, err
	}
	return hashes, nil
}
