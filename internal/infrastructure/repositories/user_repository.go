package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID                  uint   `gorm:"primaryKey"`
	TenantID            uint   `gorm:"uniqueIndex:idx_tenant_phone"`
	Phone               string `gorm:"uniqueIndex:idx_tenant_phone;index;size:32"`
	Email               string `gorm:"size:255"`
	FullName            string `gorm:"size:255"`
	PasswordHash        string `gorm:"column:password"`
	Role                string `gorm:"index;size:64"`
	IsActive            bool   `gorm:"index"`
	FailedLoginAttempts int    `gorm:"not null;default:0"`
	LockedUntil         *time.Time
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, tenantID uint, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND phone = ?", tenantID, phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByPhoneGlobal implements domain.UserRepository. Registration keeps
// phones unique across tenants, so at most one row matches.
func (r *UserRepositoryImpl) FindByPhoneGlobal(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).Order("id ASC").First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// EmailExists implements domain.UserRepository
func (r *UserRepositoryImpl) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementFailedLogins implements domain.UserRepository. The increment
// and the read run inside one transaction; the row lock taken by the
// UPDATE guarantees concurrent callers each observe a distinct count.
func (r *UserRepositoryImpl) IncrementFailedLogins(ctx context.Context, userID uint) (int, error) {
	var attempts int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBUser{}).Where("id = ?", userID).
			UpdateColumn("failed_login_attempts", gorm.Expr("failed_login_attempts + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}

		var dbUser DBUser
		if err := tx.Select("failed_login_attempts").Where("id = ?", userID).First(&dbUser).Error; err != nil {
			return err
		}
		attempts = dbUser.FailedLoginAttempts
		return nil
	})
	if err != nil {
		return 0, err
	}
	return attempts, nil
}

// LockUntil implements domain.UserRepository
func (r *UserRepositoryImpl) LockUntil(ctx context.Context, userID uint, until time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		UpdateColumn("locked_until", until).Error
}

// RecordLoginSuccess implements domain.UserRepository
func (r *UserRepositoryImpl) RecordLoginSuccess(ctx context.Context, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"failed_login_attempts": 0,
			"locked_until":          nil,
			"last_login_at":         at,
		}).Error
}

// ClearLockout implements domain.UserRepository
func (r *UserRepositoryImpl) ClearLockout(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"failed_login_attempts": 0,
			"locked_until":          nil,
		}).Error
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// BranchIDs implements domain.UserRepository. The primary branch sorts first.
func (r *UserRepositoryImpl) BranchIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&DBBranchMembership{}).
		Where("user_id = ?", userID).
		Order("is_primary DESC, branch_id ASC").
		Pluck("branch_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// userToDB converts a domain user to its database model
func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                  user.ID,
		TenantID:            user.TenantID,
		Phone:               user.Phone,
		Email:               user.Email,
		FullName:            user.FullName,
		PasswordHash:        user.PasswordHash,
		Role:                string(user.Role),
		IsActive:            user.IsActive,
		FailedLoginAttempts: user.FailedLoginAttempts,
		LockedUntil:         user.LockedUntil,
		LastLoginAt:         user.LastLoginAt,
	}
}

// userToDomain converts a database user to its domain entity
func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                  dbUser.ID,
		TenantID:            dbUser.TenantID,
		Phone:               dbUser.Phone,
		Email:               dbUser.Email,
		FullName:            dbUser.FullName,
		PasswordHash:        dbUser.PasswordHash,
		Role:                domain.Role(dbUser.Role),
		IsActive:            dbUser.IsActive,
		FailedLoginAttempts: dbUser.FailedLoginAttempts,
		LockedUntil:         dbUser.LockedUntil,
		LastLoginAt:         dbUser.LastLoginAt,
		CreatedAt:           dbUser.CreatedAt,
		UpdatedAt:           dbUser.UpdatedAt,
	}
}
