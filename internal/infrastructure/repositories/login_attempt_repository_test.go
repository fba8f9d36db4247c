package repositories

import (
	"context"
	"testing"

	"github.com/sritek/hospital-ops-sub000/domain"
)

func TestLoginAttemptRepositoryImpl_Record(t *testing.T) {
	tenantID := uint(10)
	userID := uint(3)

	tests := []struct {
		name    string
		attempt *domain.LoginAttempt
	}{
		{
			name: "successful attempt with full identity",
			attempt: &domain.LoginAttempt{
				TenantID:  &tenantID,
				UserID:    &userID,
				Phone:     "+5511987654321",
				IPAddress: "203.0.113.7",
				UserAgent: "ops-app/2.4",
				Success:   true,
				Reason:    "ok",
			},
		},
		{
			// Unknown phones produce attempts with no tenant or user.
			name: "failed attempt for unregistered phone",
			attempt: &domain.LoginAttempt{
				Phone:   "+5500000000000",
				Success: false,
				Reason:  "not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewLoginAttemptRepository(db)

			if err := repo.Record(context.Background(), tt.attempt); err != nil {
				t.Fatalf("Record() error: %v", err)
			}
			if tt.attempt.ID == 0 {
				t.Error("expected generated ID")
			}

			var stored DBLoginAttempt
			if err := db.First(&stored, tt.attempt.ID).Error; err != nil {
				t.Fatalf("expected stored row: %v", err)
			}
			if stored.Phone != tt.attempt.Phone || stored.Success != tt.attempt.Success || stored.Reason != tt.attempt.Reason {
				t.Errorf("stored attempt mismatch: %+v", stored)
			}
			if (stored.UserID == nil) != (tt.attempt.UserID == nil) {
				t.Errorf("user binding mismatch: %+v", stored)
			}
			if stored.CreatedAt.IsZero() {
				t.Error("expected creation timestamp")
			}
		})
	}
}
