package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// TenantRepositoryImpl implements domain.TenantRepository using GORM
type TenantRepositoryImpl struct {
	db *gorm.DB
}

// DBTenant represents the database model for Tenant
type DBTenant struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255"`
	Slug      string `gorm:"uniqueIndex;size:64"`
	IsActive  bool   `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBTenant) TableName() string {
	return "tenants"
}

// DBBranch represents the database model for Branch
type DBBranch struct {
	ID        uint   `gorm:"primaryKey"`
	TenantID  uint   `gorm:"uniqueIndex:idx_tenant_branch_code"`
	Name      string `gorm:"size:255"`
	Code      string `gorm:"uniqueIndex:idx_tenant_branch_code;size:32"`
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBBranch) TableName() string {
	return "branches"
}

// DBBranchMembership represents the database model for BranchMembership
type DBBranchMembership struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:idx_user_branch"`
	BranchID  uint `gorm:"uniqueIndex:idx_user_branch;index"`
	IsPrimary bool
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBBranchMembership) TableName() string {
	return "branch_memberships"
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) domain.TenantRepository {
	return &TenantRepositoryImpl{db: db}
}

// Register implements domain.TenantRepository. All five rows commit or
// none do; a failure part-way leaves no orphaned tenant or user behind.
func (r *TenantRepositoryImpl) Register(ctx context.Context, reg *domain.Registration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbTenant := tenantToDB(reg.Tenant)
		if err := tx.Create(dbTenant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrSlugTaken
			}
			return fmt.Errorf("create tenant: %w", err)
		}
		reg.Tenant.ID = dbTenant.ID

		dbBranch := branchToDB(reg.Branch)
		dbBranch.TenantID = dbTenant.ID
		if err := tx.Create(dbBranch).Error; err != nil {
			return fmt.Errorf("create branch: %w", err)
		}
		reg.Branch.ID = dbBranch.ID
		reg.Branch.TenantID = dbTenant.ID

		dbOwner := userToDB(reg.Owner)
		dbOwner.TenantID = dbTenant.ID
		if err := tx.Create(dbOwner).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrPhoneAlreadyRegistered
			}
			return fmt.Errorf("create owner: %w", err)
		}
		reg.Owner.ID = dbOwner.ID
		reg.Owner.TenantID = dbTenant.ID

		membership := &DBBranchMembership{
			UserID:    dbOwner.ID,
			BranchID:  dbBranch.ID,
			IsPrimary: true,
		}
		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("create branch membership: %w", err)
		}

		history := &DBPasswordHistory{
			UserID:       dbOwner.ID,
			PasswordHash: reg.Owner.PasswordHash,
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("create password history: %w", err)
		}

		return nil
	})
}

// FindTenantByID implements domain.TenantRepository
func (r *TenantRepositoryImpl) FindTenantByID(ctx context.Context, id uint) (*domain.Tenant, error) {
	var dbTenant DBTenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbTenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}
	return tenantToDomain(&dbTenant), nil
}

// SlugExists implements domain.TenantRepository
func (r *TenantRepositoryImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBTenant{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// tenantToDB converts a domain tenant to its database model
func tenantToDB(tenant *domain.Tenant) *DBTenant {
	return &DBTenant{
		ID:       tenant.ID,
		Name:     tenant.Name,
		Slug:     tenant.Slug,
		IsActive: tenant.IsActive,
	}
}

// tenantToDomain converts a database tenant to its domain entity
func tenantToDomain(dbTenant *DBTenant) *domain.Tenant {
	return &domain.Tenant{
		ID:        dbTenant.ID,
		Name:      dbTenant.Name,
		Slug:      dbTenant.Slug,
		IsActive:  dbTenant.IsActive,
		CreatedAt: dbTenant.CreatedAt,
		UpdatedAt: dbTenant.UpdatedAt,
	}
}

// branchToDB converts a domain branch to its database model
func branchToDB(branch *domain.Branch) *DBBranch {
	return &DBBranch{
		ID:       branch.ID,
		TenantID: branch.TenantID,
		Name:     branch.Name,
		Code:     branch.Code,
		IsActive: branch.IsActive,
	}
}
