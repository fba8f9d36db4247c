package domain

import "time"

// Tenant represents an organization registered on the platform
type Tenant struct {
	ID        uint
	Name      string
	Slug      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branch represents a physical location operated by a tenant
type Branch struct {
	ID        uint
	TenantID  uint
	Name      string
	Code      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BranchMembership assigns a user to a branch within their tenant.
// Every user has exactly one primary branch.
type BranchMembership struct {
	ID        uint
	UserID    uint
	BranchID  uint
	IsPrimary bool
	CreatedAt time.Time
}

// User represents a staff account scoped to a single tenant
type User struct {
	ID                  uint
	TenantID            uint
	Phone               string
	Email               string
	FullName            string
	PasswordHash        string
	Role                Role
	IsActive            bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLocked reports whether the account lockout is still in effect at the
// given instant. A lockout that expires exactly at that instant is over.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// Profile returns the caller-facing view of the user, stripped of credentials
func (u *User) Profile(branchIDs []uint) *UserProfile {
	return &UserProfile{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Phone:       u.Phone,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		BranchIDs:   branchIDs,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// UserProfile is the sanitized representation of a user returned to callers
type UserProfile struct {
	ID          uint       `json:"id"`
	TenantID    uint       `json:"tenant_id"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email,omitempty"`
	FullName    string     `json:"full_name"`
	Role        Role       `json:"role"`
	BranchIDs   []uint     `json:"branch_ids"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RefreshToken is an opaque, revocable credential used to mint new access tokens
type RefreshToken struct {
	ID        uint
	UserID    uint
	Token     string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsRevoked reports whether the token has been explicitly revoked
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the token lifetime has elapsed at the given instant
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// OtpPurpose scopes a one-time code to the flow that requested it
type OtpPurpose string

const (
	OtpPurposeLogin         OtpPurpose = "login"
	OtpPurposeRegister      OtpPurpose = "register"
	OtpPurposeResetPassword OtpPurpose = "reset_password"
	OtpPurposeVerifyPhone   OtpPurpose = "verify_phone"
)

// Valid reports whether p is a recognized purpose
func (p OtpPurpose) Valid() bool {
	switch p {
	case OtpPurposeLogin, OtpPurposeRegister, OtpPurposeResetPassword, OtpPurposeVerifyPhone:
		return true
	}
	return false
}

// OtpCode is a single-use verification code bound to a phone and purpose.
// At most one unconsumed code exists per (phone, purpose) pair.
type OtpCode struct {
	Phone     string     `json:"phone"`
	Purpose   OtpPurpose `json:"purpose"`
	Code      string     `json:"code"`
	ExpiresAt time.Time  `json:"expires_at"`
	Attempts  int        `json:"attempts"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsExpired reports whether the code lifetime has elapsed at the given instant
func (o *OtpCode) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// MaskPhone renders a phone number for display, keeping only the last
// four characters. It is a formatting helper, never matching logic.
func MaskPhone(phone string) string {
	runes := []rune(phone)
	keep := 4
	if len(runes) <= keep {
		keep = 0
	}
	masked := make([]rune, len(runes))
	for i := range runes {
		if i < len(runes)-keep {
			masked[i] = '*'
		} else {
			masked[i] = runes[i]
		}
	}
	return string(masked)
}

// LoginAttempt is an immutable audit record of a single authentication attempt
type LoginAttempt struct {
	ID        uint
	TenantID  *uint
	UserID    *uint
	Phone     string
	IPAddress string
	UserAgent string
	Success   bool
	Reason    string
	CreatedAt time.Time
}

// PasswordHistory is an append-only record of a password hash a user has held
type PasswordHistory struct {
	ID           uint
	UserID       uint
	PasswordHash string
	CreatedAt    time.Time
}

// TokenPair bundles a signed access token with its opaque refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SessionResult represents a successful authentication outcome
type SessionResult struct {
	User         *UserProfile
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Registration bundles the aggregates created during tenant sign-up.
// The store must persist all of them in a single transaction.
type Registration struct {
	Tenant *Tenant
	Branch *Branch
	Owner  *User
}

// RegistrationResult is the outcome of tenant sign-up
type RegistrationResult struct {
	Tenant *Tenant
	Branch *Branch
	Owner  *UserProfile
}

// RegisterInput carries the fields required to sign up a new tenant
type RegisterInput struct {
	TenantName string
	BranchName string
	FullName   string
	Phone      string
	Email      string
	Password   string
}

// LoginInput carries credentials plus client metadata for one login attempt.
// TenantID is optional; when nil the phone is looked up platform-wide.
type LoginInput struct {
	TenantID *uint
	Phone    string
	Password string
	Meta     LoginMeta
}

// LoginMeta carries client information recorded with each login attempt
type LoginMeta struct {
	IPAddress string
	UserAgent string
}

// ResetPasswordInput carries the fields for an OTP-gated password reset
type ResetPasswordInput struct {
	Phone       string
	Code        string
	NewPassword string
}
