package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByPhone(ctx context.Context, tenantID uint, phone string) (*User, error)
	FindByPhoneGlobal(ctx context.Context, phone string) (*User, error)
	// EmailExists reports whether any user on the platform has the email.
	EmailExists(ctx context.Context, email string) (bool, error)
	// IncrementFailedLogins atomically bumps the failed-login counter and
	// returns the post-increment value. Concurrent callers must each
	// observe a distinct count.
	IncrementFailedLogins(ctx context.Context, userID uint) (int, error)
	LockUntil(ctx context.Context, userID uint, until time.Time) error
	// RecordLoginSuccess stamps the login time and clears the failed-login
	// counter and any lockout in one write.
	RecordLoginSuccess(ctx context.Context, userID uint, at time.Time) error
	ClearLockout(ctx context.Context, userID uint) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	BranchIDs(ctx context.Context, userID uint) ([]uint, error)
}

// TenantRepository defines tenant and branch data access operations
type TenantRepository interface {
	// Register persists the tenant, its first branch, the owner user, the
	// owner's primary branch membership, and the initial password history
	// entry in a single transaction, filling in generated IDs.
	Register(ctx context.Context, reg *Registration) error
	FindTenantByID(ctx context.Context, id uint) (*Tenant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// RefreshTokenRepository defines refresh token data access operations
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	// Revoke marks the token revoked. Revoking an unknown or already
	// revoked token is a no-op.
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uint) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// OtpRepository defines storage for pending one-time codes
type OtpRepository interface {
	// Store saves the code for its (phone, purpose) pair, atomically
	// replacing any pending code and resetting its attempt counter.
	Store(ctx context.Context, otp *OtpCode) error
	Find(ctx context.Context, phone string, purpose OtpPurpose) (*OtpCode, error)
	// IncrementAttempts atomically bumps the verification attempt counter
	// and returns the post-increment value.
	IncrementAttempts(ctx context.Context, phone string, purpose OtpPurpose) (int, error)
	Delete(ctx context.Context, phone string, purpose OtpPurpose) error
	// ThrottleSend reserves a send slot for the pair. It reports false with
	// the remaining wait when a send happened within the resend window.
	ThrottleSend(ctx context.Context, phone string, purpose OtpPurpose) (bool, time.Duration, error)
}

// LoginAttemptRepository records the immutable authentication audit trail
type LoginAttemptRepository interface {
	Record(ctx context.Context, attempt *LoginAttempt) error
}

// PasswordHistoryRepository defines storage for previously used password hashes
type PasswordHistoryRepository interface {
	Add(ctx context.Context, userID uint, passwordHash string) error
	// RecentHashes returns up to limit hashes, most recent first.
	RecentHashes(ctx context.Context, userID uint, limit int) ([]string, error)
}

// PasswordHasher defines one-way password hashing operations
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hashedPassword. It returns
	// false for malformed hashes rather than failing.
	Verify(hashedPassword, password string) bool
}

// PasswordPolicy defines password acceptance rules
type PasswordPolicy interface {
	// Validate returns every violated rule, not just the first.
	Validate(password string) []string
	IsReused(password string, recentHashes []string) bool
}

// TokenService defines token issuance and verification operations
type TokenService interface {
	GenerateAccessToken(user *User, branchIDs []uint, permissions []Permission) (string, error)
	GenerateRefreshToken() (string, error)
	GeneratePair(user *User, branchIDs []uint, permissions []Permission) (*TokenPair, error)
	// ValidateAccessToken verifies signature and expiry without any
	// server-side lookup.
	ValidateAccessToken(token string) (*TokenClaims, error)
	// AccessExpirySeconds reports the lifetime stamped on new access tokens.
	AccessExpirySeconds() int64
}

// PermissionResolver answers capability questions for the closed role set
type PermissionResolver interface {
	PermissionsFor(role Role) ([]Permission, error)
	HasAny(role Role, required ...Permission) bool
	HasAll(role Role, required ...Permission) bool
	Outranks(a, b Role) bool
}

// OtpService defines one-time code operations
type OtpService interface {
	Request(ctx context.Context, phone string, purpose OtpPurpose) error
	Verify(ctx context.Context, phone string, purpose OtpPurpose, code string) error
}

// AuthService defines authentication and account business logic
type AuthService interface {
	Register(ctx context.Context, input *RegisterInput) (*RegistrationResult, error)
	Login(ctx context.Context, input *LoginInput) (*SessionResult, error)
	Refresh(ctx context.Context, refreshToken string) (*SessionResult, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID uint) (int64, error)
	RequestOtp(ctx context.Context, phone string, purpose OtpPurpose) error
	VerifyOtp(ctx context.Context, phone string, purpose OtpPurpose, code string) error
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	GetProfile(ctx context.Context, userID uint) (*UserProfile, error)
	UnlockAccount(ctx context.Context, actorID, targetUserID uint) error
}

// NotificationService defines out-of-band message delivery
type NotificationService interface {
	SendSMS(to, message string) error
}

// TokenClaims represents the verified contents of an access token
type TokenClaims struct {
	UserID      uint         `json:"sub"`
	TenantID    uint         `json:"tenant_id"`
	BranchIDs   []uint       `json:"branch_ids"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
	TokenID     string       `json:"jti"`
	IssuedAt    int64        `json:"iat"`
	ExpiresAt   int64        `json:"exp"`
}
