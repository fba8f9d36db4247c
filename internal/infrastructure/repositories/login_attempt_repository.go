package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// LoginAttemptRepositoryImpl implements domain.LoginAttemptRepository using GORM
type LoginAttemptRepositoryImpl struct {
	db *gorm.DB
}

// DBLoginAttempt represents the database model for LoginAttempt. Rows are
// insert-only; nothing updates or deletes them.
type DBLoginAttempt struct {
	ID        uint      `gorm:"primaryKey"`
	TenantID  *uint     `gorm:"index"`
	UserID    *uint     `gorm:"index"`
	Phone     string    `gorm:"index;size:32"`
	IPAddress string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:512"`
	Success   bool      `gorm:"index"`
	Reason    string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBLoginAttempt) TableName() string {
	return "login_attempts"
}

// NewLoginAttemptRepository creates a new login attempt repository
func NewLoginAttemptRepository(db *gorm.DB) domain.LoginAttemptRepository {
	return &LoginAttemptRepositoryImpl{db: db}
}

// Record implements domain.LoginAttemptRepository
func (r *LoginAttemptRepositoryImpl) Record(ctx context.Context, attempt *domain.LoginAttempt) error {
	dbAttempt := &DBLoginAttempt{
		TenantID:  attempt.TenantID,
		UserID:    attempt.UserID,
		Phone:     attempt.Phone,
		IPAddress: attempt.IPAddress,
		UserAgent: attempt.UserAgent,
		Success:   attempt.Success,
		Reason:    attempt.Reason,
	}
	if err := r.db.WithContext(ctx).Create(dbAttempt).Error; err != nil {
		return err
	}
	attempt.ID = dbAttempt.ID
	return nil
}
