package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// setupTestRedis creates a test Redis instance using miniredis
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func newOtp(phone string, purpose domain.OtpPurpose) *domain.OtpCode {
	return &domain.OtpCode{
		Phone:     phone,
		Code:      "483920",
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second),
	}
}

func TestOtpRepositoryImpl_StoreAndFind(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOtpRepository(client, 10*time.Minute, time.Minute)
	ctx := context.Background()

	otp := newOtp("+5511987654321", domain.OtpPurposeLogin)
	if err := repo.Store(ctx, otp); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	found, err := repo.Find(ctx, "+5511987654321", domain.OtpPurposeLogin)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found.Code != "483920" || found.Purpose != domain.OtpPurposeLogin {
		t.Errorf("unexpected otp: %+v", found)
	}
	if found.Attempts != 0 {
		t.Errorf("expected fresh counter, got %d", found.Attempts)
	}
	if !found.ExpiresAt.Equal(otp.ExpiresAt) {
		t.Errorf("expected expiry %v, got %v", otp.ExpiresAt, found.ExpiresAt)
	}
}

func TestOtpRepositoryImpl_FindNotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOtpRepository(client, 10*time.Minute, time.Minute)

	if _, err := repo.Find(context.Background(), "+5511987654321", domain.OtpPurposeLogin); !errors.Is(err, domain.ErrOtpNotFound) {
		t.Errorf("expected ErrOtpNotFound, got %v", err)
	}
}

func TestOtpRepositoryImpl_PurposesAreIndependent(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOtpRepository(client, 10*time.Minute, time.Minute)
	ctx := context.Background()

	login := newOtp("+5511987654321", domain.OtpPurposeLogin)
	reset := newOtp("+5511987654321", domain.OtpPurposeResetPassword)
	reset.Code = "102938"
	if err := repo.Store(ctx, login); err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	if err := repo.Store(ctx, reset); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	found, err := repo.Find(ctx, "+5511987654321", domain.OtpPurposeLogin)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found.Code != "483920" {
		t.Errorf("login code clobbered by reset code: %+v", found)
	}
}

func TestOtpRepositoryImpl_StoreReplacesPendingCode(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOtpRepository(client, 10*time.Minute, time.Minute)
	ctx := context.Background()

	if err := repo.Store(ctx, newOtp("+5511987654321", domain.OtpPurposeLogin)); err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := repo.IncrementAttempts(ctx, "+5511987654321", domain.OtpPurposeLogin); err != nil {
			t.Fatalf("IncrementAttempts() error: %v", err)
		}
	}

	replacement := newOtp("+5511987654321", domain.OtpPurposeLogin)
	replacement.Code = "776655"
	if err := repo.Store(ctx, replacement); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	found, err := repo.Find(ctx, "+5511987654321", domain.OtpPurposeLogin)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found.Code != "776655" {
		t.Errorf("expected replacement code, got %q", found.Code)
	}
	if found.Attempts != 0 {
		t.Errorf("expected attempt counter reset with new code, got %d", found.Attempts)
	}
}

func TestOtpRepositoryImpl_IncrementAttempts(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOtpRepository(client, 10*time.Minute, time.Minute)
	ctx := context.Background()

	if err := repo.Store(ctx, newOtp("+5511987654321", domain.OtpPurposeLogin)); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	for want := 1; want <= 4; want++ {
		got, err := repo.IncrementAttempts(ctx, "+5511987654321", domain.OtpPurposeLogin)
		if err != nil {
			t.Fatalf("IncrementAttempts() error: %v", err)
		}
		if got != want {
			t.Errorf("expected count %d, got %d", want, got)
		}
	}

	found, err := repo.Find(ctx, "+5511987654321", domain.OtpPurposeLogin)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found.Attempts != 4 {
		t.Errorf("expected folded counter 4, got %d", found.Attempts)
	}
}

func TestOtpRepositoryImpl_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOtpRepository(client, 10*time.Minute, time.Minute)
	ctx := context.Background()

	if err := repo.Store(ctx, newOtp("+5511987654321", domain.OtpPurposeLogin)); err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	if _, err := repo.IncrementAttempts(ctx, "+5511987654321", domain.OtpPurposeLogin); err != nil {
		t.Fatalf("IncrementAttempts() error: %v", err)
	}

	if err := repo.Delete(ctx, "+5511987654321", domain.OtpPurposeLogin); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := repo.Find(ctx, "+5511987654321", domain.OtpPurposeLogin); !errors.Is(err, domain.ErrOtpNotFound) {
		t.Errorf("expected ErrOtpNotFound after delete, got %v", err)
	}

	// The stale counter must not leak into a future code.
	if err := repo.Store(ctx, newOtp("+5511987654321", domain.OtpPurposeLogin)); err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	found, err := repo.Find(ctx, "+5511987654321", domain.OtpPurposeLogin)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found.Attempts != 0 {
		t.Errorf("expected fresh counter after delete, got %d", found.Attempts)
	}
}

func TestOtpRepositoryImpl_CodeExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewOtpRepository(client, 10*time.Minute, time.Minute)
	ctx := context.Background()

	if err := repo.Store(ctx, newOtp("+5511987654321", domain.OtpPurposeLogin)); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	mr.FastForward(10*time.Minute + time.Second)

	if _, err := repo.Find(ctx, "+5511987654321", domain.OtpPurposeLogin); !errors.Is(err, domain.ErrOtpNotFound) {
		t.Errorf("expected code to expire from store, got %v", err)
	}
}

func TestOtpRepositoryImpl_ThrottleSend(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewOtpRepository(client, 10*time.Minute, time.Minute)
	ctx := context.Background()

	ok, retryAfter, err := repo.ThrottleSend(ctx, "+5511987654321", domain.OtpPurposeLogin)
	if err != nil {
		t.Fatalf("ThrottleSend() error: %v", err)
	}
	if !ok || retryAfter != 0 {
		t.Fatalf("expected first send allowed, got ok=%v retryAfter=%v", ok, retryAfter)
	}

	ok, retryAfter, err = repo.ThrottleSend(ctx, "+5511987654321", domain.OtpPurposeLogin)
	if err != nil {
		t.Fatalf("ThrottleSend() error: %v", err)
	}
	if ok {
		t.Fatal("expected second send within the window to be throttled")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("expected retry-after within the window, got %v", retryAfter)
	}

	// A different purpose has its own window.
	ok, _, err = repo.ThrottleSend(ctx, "+5511987654321", domain.OtpPurposeResetPassword)
	if err != nil {
		t.Fatalf("ThrottleSend() error: %v", err)
	}
	if !ok {
		t.Error("expected independent window per purpose")
	}

	mr.FastForward(time.Minute + time.Second)

	ok, _, err = repo.ThrottleSend(ctx, "+5511987654321", domain.OtpPurposeLogin)
	if err != nil {
		t.Fatalf("ThrottleSend() error: %v", err)
	}
	if !ok {
		t.Error("expected send allowed after the window elapses")
	}
}
