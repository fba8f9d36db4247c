package auth

import (
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sritek/hospital-ops-sub000/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		TenantID: 7,
		Phone:    "+5511987654321",
		Role:     domain.RoleDoctor,
		IsActive: true,
	}
}

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"15m", 900},
		{"900s", 900},
		{"1h", 3600},
		{"2h", 7200},
		{"7d", 604800},
		{"1s", 1},
		// Anything outside <number><s|m|h|d> falls back to the default.
		{"", DefaultAccessExpirySeconds},
		{"15", DefaultAccessExpirySeconds},
		{"m", DefaultAccessExpirySeconds},
		{"fifteen minutes", DefaultAccessExpirySeconds},
		{"15M", DefaultAccessExpirySeconds},
		{"1.5h", DefaultAccessExpirySeconds},
		{"-15m", DefaultAccessExpirySeconds},
		{"15ms", DefaultAccessExpirySeconds},
		{"99999999999999999999d", DefaultAccessExpirySeconds},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseExpiry(tt.input); got != tt.expected {
				t.Errorf("ParseExpiry(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "test-issuer", "15m")

	branchIDs := []uint{4, 9}
	permissions := []domain.Permission{domain.PermPatientsRead, domain.PermMessagesSend}

	token, err := svc.GenerateAccessToken(testUser(), branchIDs, permissions)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.TenantID != 7 {
		t.Errorf("expected tenant ID 7, got %d", claims.TenantID)
	}
	if claims.Role != domain.RoleDoctor {
		t.Errorf("expected role %s, got %s", domain.RoleDoctor, claims.Role)
	}
	if len(claims.BranchIDs) != 2 || claims.BranchIDs[0] != 4 || claims.BranchIDs[1] != 9 {
		t.Errorf("expected branch IDs [4 9], got %v", claims.BranchIDs)
	}
	if len(claims.Permissions) != 2 || claims.Permissions[0] != domain.PermPatientsRead {
		t.Errorf("expected embedded permissions, got %v", claims.Permissions)
	}
	if claims.TokenID == "" {
		t.Error("expected a non-empty jti")
	}
	if got := claims.ExpiresAt - claims.IssuedAt; got != 900 {
		t.Errorf("expected 900s lifetime, got %d", got)
	}
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	svc := NewJWTService(testSecret, "test-issuer", "15m")

	first, err := svc.GenerateAccessToken(testUser(), nil, nil)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error: %v", err)
	}
	second, err := svc.GenerateAccessToken(testUser(), nil, nil)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error: %v", err)
	}
	if first == second {
		t.Error("two tokens for the same user should differ via jti")
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(testSecret, "test-issuer", "15m")

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       uint(42),
		"tenant_id": uint(7),
		"role":      "doctor",
		"iat":       now.Add(-time.Hour).Unix(),
		"exp":       now.Add(-30 * time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing fixture token: %v", err)
	}

	_, err = svc.ValidateAccessToken(expired)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_RejectsWrongKey(t *testing.T) {
	issuing := NewJWTService(testSecret, "test-issuer", "15m")
	verifying := NewJWTService("ffffffffffffffffffffffffffffffff", "test-issuer", "15m")

	token, err := issuing.GenerateAccessToken(testUser(), nil, nil)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error: %v", err)
	}

	if _, err := verifying.ValidateAccessToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for wrong key, got %v", err)
	}
}

func TestJWTService_RejectsGarbageAndTampering(t *testing.T) {
	svc := NewJWTService(testSecret, "test-issuer", "15m")

	for _, bad := range []string{"", "garbage", "a.b.c", "not.a.token"} {
		if _, err := svc.ValidateAccessToken(bad); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("ValidateAccessToken(%q) = %v, want ErrTokenInvalid", bad, err)
		}
	}

	token, err := svc.GenerateAccessToken(testUser(), nil, nil)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error: %v", err)
	}
	tampered := token[:len(token)-4] + "AAAA"
	if _, err := svc.ValidateAccessToken(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestJWTService_RejectsUnsignedToken(t *testing.T) {
	svc := NewJWTService(testSecret, "test-issuer", "15m")

	claims := jwt.MapClaims{
		"sub":       uint(42),
		"tenant_id": uint(7),
		"role":      "doctor",
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(15 * time.Minute).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing fixture token: %v", err)
	}

	if _, err := svc.ValidateAccessToken(unsigned); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for alg=none token, got %v", err)
	}
}

func TestJWTService_ToleratesAbsentListClaims(t *testing.T) {
	svc := NewJWTService(testSecret, "test-issuer", "15m")

	claims := jwt.MapClaims{
		"sub":       uint(42),
		"tenant_id": uint(7),
		"role":      "support",
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(15 * time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing fixture token: %v", err)
	}

	parsed, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error: %v", err)
	}
	if len(parsed.BranchIDs) != 0 || len(parsed.Permissions) != 0 {
		t.Errorf("expected empty list claims, got %v / %v", parsed.BranchIDs, parsed.Permissions)
	}
}

func TestJWTService_RefreshTokenShape(t *testing.T) {
	svc := NewJWTService(testSecret, "test-issuer", "15m")

	token, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error: %v", err)
	}

	raw, err := hex.DecodeString(token)
	if err != nil {
		t.Fatalf("refresh token should be hex encoded: %v", err)
	}
	if len(raw) != refreshTokenBytes {
		t.Errorf("expected %d random bytes, got %d", refreshTokenBytes, len(raw))
	}

	second, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error: %v", err)
	}
	if token == second {
		t.Error("refresh tokens must be unique")
	}

	// Opaque refresh tokens must never parse as access tokens.
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Error("refresh token should not validate as an access token")
	}
}

func TestJWTService_GeneratePair(t *testing.T) {
	svc := NewJWTService(testSecret, "test-issuer", "15m")

	pair, err := svc.GeneratePair(testUser(), []uint{4}, []domain.Permission{domain.PermPatientsRead})
	if err != nil {
		t.Fatalf("GeneratePair() error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens in the pair")
	}
	if pair.ExpiresIn != 900 {
		t.Errorf("expected ExpiresIn 900, got %d", pair.ExpiresIn)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens must differ")
	}
}
