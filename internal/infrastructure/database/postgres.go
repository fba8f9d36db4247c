package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings.
// SQL logging stays at warn level so bound parameters (password hashes,
// token values) never reach the logs.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "identity.",
		},
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates or updates every table the identity core owns
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBTenant{},
		&repositories.DBBranch{},
		&repositories.DBUser{},
		&repositories.DBBranchMembership{},
		&repositories.DBRefreshToken{},
		&repositories.DBLoginAttempt{},
		&repositories.DBPasswordHistory{},
	); err != nil {
		return fmt.Errorf("failed to migrate identity tables: %w", err)
	}
	return nil
}
