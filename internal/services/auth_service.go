package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// AuthConfig carries the account security settings the orchestrator
// enforces. Zero values are replaced with safe defaults by NewAuthService.
type AuthConfig struct {
	// MaxLoginFailures is the number of consecutive failed logins that
	// locks the account.
	MaxLoginFailures int
	// LockoutDuration is how long a lockout lasts before it expires on
	// its own.
	LockoutDuration time.Duration
	// PasswordHistory is how many previous hashes a new password is
	// checked against.
	PasswordHistory int
	// RefreshTTL is the lifetime of issued refresh tokens.
	RefreshTTL time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	tenantRepo  domain.TenantRepository
	refreshRepo domain.RefreshTokenRepository
	historyRepo domain.PasswordHistoryRepository
	attemptRepo domain.LoginAttemptRepository
	hasher      domain.PasswordHasher
	policy      domain.PasswordPolicy
	tokenSvc    domain.TokenService
	otpSvc      domain.OtpService
	permissions domain.PermissionResolver
	audit       domain.AuditLogger
	logger      *zap.Logger
	config      AuthConfig
}

// NewAuthService creates the authentication orchestrator
func NewAuthService(
	userRepo domain.UserRepository,
	tenantRepo domain.TenantRepository,
	refreshRepo domain.RefreshTokenRepository,
	historyRepo domain.PasswordHistoryRepository,
	attemptRepo domain.LoginAttemptRepository,
	hasher domain.PasswordHasher,
	policy domain.PasswordPolicy,
	tokenSvc domain.TokenService,
	otpSvc domain.OtpService,
	permissions domain.PermissionResolver,
	audit domain.AuditLogger,
	logger *zap.Logger,
	config AuthConfig,
) *AuthServiceImpl {
	if config.MaxLoginFailures <= 0 {
		config.MaxLoginFailures = 5
	}
	if config.LockoutDuration <= 0 {
		config.LockoutDuration = 30 * time.Minute
	}
	if config.PasswordHistory <= 0 {
		config.PasswordHistory = 5
	}
	if config.RefreshTTL <= 0 {
		config.RefreshTTL = 7 * 24 * time.Hour
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		tenantRepo:  tenantRepo,
		refreshRepo: refreshRepo,
		historyRepo: historyRepo,
		attemptRepo: attemptRepo,
		hasher:      hasher,
		policy:      policy,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		permissions: permissions,
		audit:       audit,
		logger:      logger,
		config:      config,
	}
}

// Register implements domain.AuthService. It provisions a tenant, its
// first branch and the owner account in one transaction.
func (a *AuthServiceImpl) Register(ctx context.Context, input *domain.RegisterInput) (*domain.RegistrationResult, error) {
	if err := a.validateRegistration(input); err != nil {
		return nil, err
	}

	// Conflict checks are platform-wide: a phone or email belongs to at
	// most one tenant, so first-touch login can resolve it without a
	// tenant hint.
	if _, err := a.userRepo.FindByPhoneGlobal(ctx, input.Phone); err == nil {
		return nil, domain.ErrPhoneAlreadyRegistered
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}
	if input.Email != "" {
		taken, err := a.userRepo.EmailExists(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, domain.ErrEmailAlreadyRegistered
		}
	}

	hash, err := a.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	slug, err := a.uniqueSlug(ctx, input.TenantName)
	if err != nil {
		return nil, err
	}

	branchName := strings.TrimSpace(input.BranchName)
	if branchName == "" {
		branchName = strings.TrimSpace(input.TenantName)
	}

	reg := &domain.Registration{
		Tenant: &domain.Tenant{
			Name:     strings.TrimSpace(input.TenantName),
			Slug:     slug,
			IsActive: true,
		},
		Branch: &domain.Branch{
			Name:     branchName,
			Code:     "main",
			IsActive: true,
		},
		Owner: &domain.User{
			Phone:        input.Phone,
			Email:        input.Email,
			FullName:     strings.TrimSpace(input.FullName),
			PasswordHash: hash,
			Role:         domain.RoleOwner,
			IsActive:     true,
		},
	}
	if err := a.tenantRepo.Register(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrSlugTaken) || errors.Is(err, domain.ErrPhoneAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register tenant: %w", err)
	}

	a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditTenantRegistered).
		WithUser(reg.Tenant.ID, reg.Owner.ID).
		WithPhone(domain.MaskPhone(input.Phone)).
		WithMetadata("slug", slug))

	return &domain.RegistrationResult{
		Tenant: reg.Tenant,
		Branch: reg.Branch,
		Owner:  reg.Owner.Profile([]uint{reg.Branch.ID}),
	}, nil
}

// Login implements domain.AuthService. Every failure mode except an
// active lockout reports the same invalid-credentials error, so callers
// cannot probe which phones exist.
func (a *AuthServiceImpl) Login(ctx context.Context, input *domain.LoginInput) (*domain.SessionResult, error) {
	now := time.Now().UTC()

	user, err := a.lookupForLogin(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			a.recordAttempt(ctx, input, nil, false, "not found")
			a.auditLoginFailed(ctx, input, nil, "not found")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		a.recordAttempt(ctx, input, user, false, "inactive")
		a.auditLoginFailed(ctx, input, user, "inactive")
		return nil, domain.ErrInvalidCredentials
	}

	if user.IsLocked(now) {
		a.recordAttempt(ctx, input, user, false, "locked")
		a.auditLoginFailed(ctx, input, user, "locked")
		return nil, domain.ErrAccountLocked
	}

	if !a.hasher.Verify(user.PasswordHash, input.Password) {
		a.handleFailedPassword(ctx, input, user)
		return nil, domain.ErrInvalidCredentials
	}

	// Success resets the failure counter and clears any stale lockout
	if err := a.userRepo.RecordLoginSuccess(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	session, err := a.openSession(ctx, user, now)
	if err != nil {
		return nil, err
	}

	a.recordAttempt(ctx, input, user, true, "ok")
	a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditLoginSucceeded).
		WithUser(user.TenantID, user.ID).
		WithPhone(domain.MaskPhone(user.Phone)).
		WithClient(input.Meta))

	return session, nil
}

// Refresh implements domain.AuthService. The refresh token is reused,
// not rotated: the same token stays valid until it expires or is revoked.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.SessionResult, error) {
	stored, err := a.refreshRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenInvalid) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	now := time.Now().UTC()
	if stored.IsRevoked() || stored.IsExpired(now) {
		return nil, domain.ErrRefreshTokenInvalid
	}

	user, err := a.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrRefreshTokenInvalid
	}

	// Re-resolve branches and permissions so the new access token
	// reflects membership or role changes made since login
	branchIDs, err := a.userRepo.BranchIDs(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load branches: %w", err)
	}
	perms, err := a.permissions.PermissionsFor(user.Role)
	if err != nil {
		return nil, err
	}
	accessToken, err := a.tokenSvc.GenerateAccessToken(user, branchIDs, perms)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditTokenRefreshed).
		WithUser(user.TenantID, user.ID))

	return &domain.SessionResult{
		User:         user.Profile(branchIDs),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    a.tokenSvc.AccessExpirySeconds(),
	}, nil
}

// Logout implements domain.AuthService. Revoking an unknown or already
// revoked token is a no-op, so clients can retry safely.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	stored, err := a.refreshRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenInvalid) {
			return nil
		}
		return fmt.Errorf("failed to load refresh token: %w", err)
	}

	if err := a.refreshRepo.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	event := domain.NewAuditEvent(domain.AuditLogout)
	if user, err := a.userRepo.FindByID(ctx, stored.UserID); err == nil {
		event.WithUser(user.TenantID, user.ID)
	}
	a.audit.Log(ctx, event)
	return nil
}

// LogoutAll implements domain.AuthService
func (a *AuthServiceImpl) LogoutAll(ctx context.Context, userID uint) (int64, error) {
	revoked, err := a.refreshRepo.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	event := domain.NewAuditEvent(domain.AuditLogoutAll).
		WithMetadata("revoked", revoked)
	if user, err := a.userRepo.FindByID(ctx, userID); err == nil {
		event.WithUser(user.TenantID, user.ID)
	}
	a.audit.Log(ctx, event)
	return revoked, nil
}

// RequestOtp implements domain.AuthService. For purposes that need an
// existing account, an unknown phone reports success without issuing a
// code; only the audit trail records the difference.
func (a *AuthServiceImpl) RequestOtp(ctx context.Context, phone string, purpose domain.OtpPurpose) error {
	if !purpose.Valid() {
		return domain.NewValidationError().Add("purpose", "unknown otp purpose").ErrOrNil()
	}

	switch purpose {
	case domain.OtpPurposeLogin, domain.OtpPurposeResetPassword:
		if _, err := a.userRepo.FindByPhoneGlobal(ctx, phone); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditOtpRequested).
					WithPhone(domain.MaskPhone(phone)).
					WithMetadata("purpose", string(purpose)).
					Failed("unknown phone"))
				return nil
			}
			return fmt.Errorf("failed to look up user: %w", err)
		}
	case domain.OtpPurposeRegister:
		if _, err := a.userRepo.FindByPhoneGlobal(ctx, phone); err == nil {
			return domain.ErrPhoneAlreadyRegistered
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("failed to look up user: %w", err)
		}
	}

	if err := a.otpSvc.Request(ctx, phone, purpose); err != nil {
		return err
	}

	a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditOtpRequested).
		WithPhone(domain.MaskPhone(phone)).
		WithMetadata("purpose", string(purpose)))
	return nil
}

// VerifyOtp implements domain.AuthService
func (a *AuthServiceImpl) VerifyOtp(ctx context.Context, phone string, purpose domain.OtpPurpose, code string) error {
	if err := a.otpSvc.Verify(ctx, phone, purpose, code); err != nil {
		a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditOtpFailed).
			WithPhone(domain.MaskPhone(phone)).
			WithMetadata("purpose", string(purpose)).
			Failed(err.Error()))
		return err
	}

	a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditOtpVerified).
		WithPhone(domain.MaskPhone(phone)).
		WithMetadata("purpose", string(purpose)))
	return nil
}

// ResetPassword implements domain.AuthService. A reset proves control
// of the phone, not of existing sessions: every session is revoked and
// any lockout clears.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, input *domain.ResetPasswordInput) error {
	if err := a.otpSvc.Verify(ctx, input.Phone, domain.OtpPurposeResetPassword, input.Code); err != nil {
		return err
	}

	user, err := a.userRepo.FindByPhoneGlobal(ctx, input.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := a.applyNewPassword(ctx, user, input.NewPassword); err != nil {
		return err
	}

	if _, err := a.refreshRepo.RevokeAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	if err := a.userRepo.ClearLockout(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to clear lockout: %w", err)
	}

	a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditPasswordReset).
		WithUser(user.TenantID, user.ID).
		WithPhone(domain.MaskPhone(user.Phone)))
	return nil
}

// ChangePassword implements domain.AuthService. Unlike a reset, a
// change is made from inside an authenticated session, so existing
// sessions stay valid.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if !a.hasher.Verify(user.PasswordHash, currentPassword) {
		return domain.ErrInvalidCredentials
	}

	if err := a.applyNewPassword(ctx, user, newPassword); err != nil {
		return err
	}

	a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditPasswordChanged).
		WithUser(user.TenantID, user.ID))
	return nil
}

// GetProfile implements domain.AuthService
func (a *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	branchIDs, err := a.userRepo.BranchIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load branches: %w", err)
	}
	return user.Profile(branchIDs), nil
}

// UnlockAccount implements domain.AuthService. It lets a higher-ranked
// user clear a lockout before the window expires on its own.
func (a *AuthServiceImpl) UnlockAccount(ctx context.Context, actorID, targetUserID uint) error {
	actor, err := a.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to load actor: %w", err)
	}
	target, err := a.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to load target user: %w", err)
	}

	// Cross-tenant lookups resolve to not-found, never to forbidden:
	// a tenant must not learn which user IDs exist elsewhere.
	if actor.TenantID != target.TenantID {
		return domain.ErrUserNotFound
	}
	if !a.permissions.HasAny(actor.Role, domain.PermUsersWrite) {
		return domain.ErrPermissionDenied
	}
	if !a.permissions.Outranks(actor.Role, target.Role) {
		return domain.ErrPermissionDenied
	}

	if err := a.userRepo.ClearLockout(ctx, target.ID); err != nil {
		return fmt.Errorf("failed to clear lockout: %w", err)
	}

	a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditAccountUnlocked).
		WithUser(target.TenantID, target.ID).
		WithMetadata("actor_id", actor.ID))
	return nil
}

// validateRegistration checks required fields and the password policy,
// reporting every violation at once.
func (a *AuthServiceImpl) validateRegistration(input *domain.RegisterInput) error {
	vErr := domain.NewValidationError()
	if strings.TrimSpace(input.TenantName) == "" {
		vErr.Add("tenant_name", "is required")
	}
	if strings.TrimSpace(input.FullName) == "" {
		vErr.Add("full_name", "is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		vErr.Add("phone", "is required")
	}
	for _, violation := range a.policy.Validate(input.Password) {
		vErr.Add("password", violation)
	}
	return vErr.ErrOrNil()
}

// lookupForLogin resolves the user within the given tenant, or across
// the whole platform when the caller sent no tenant hint.
func (a *AuthServiceImpl) lookupForLogin(ctx context.Context, input *domain.LoginInput) (*domain.User, error) {
	if input.TenantID != nil {
		return a.userRepo.FindByPhone(ctx, *input.TenantID, input.Phone)
	}
	return a.userRepo.FindByPhoneGlobal(ctx, input.Phone)
}

// handleFailedPassword spends one failure against the lockout budget.
// Reaching the limit locks the account; the counter only resets on a
// successful login or an explicit unlock.
func (a *AuthServiceImpl) handleFailedPassword(ctx context.Context, input *domain.LoginInput, user *domain.User) {
	count, err := a.userRepo.IncrementFailedLogins(ctx, user.ID)
	if err != nil {
		a.logger.Warn("failed to count login failure",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
	} else if count >= a.config.MaxLoginFailures {
		until := time.Now().UTC().Add(a.config.LockoutDuration)
		if err := a.userRepo.LockUntil(ctx, user.ID, until); err != nil {
			a.logger.Warn("failed to lock account",
				zap.Uint("user_id", user.ID),
				zap.Error(err))
		} else {
			a.audit.Log(ctx, domain.NewAuditEvent(domain.AuditAccountLocked).
				WithUser(user.TenantID, user.ID).
				WithPhone(domain.MaskPhone(user.Phone)).
				WithClient(input.Meta).
				Failed("failed login limit reached"))
		}
	}
	a.recordAttempt(ctx, input, user, false, "wrong password")
	a.auditLoginFailed(ctx, input, user, "wrong password")
}

// openSession issues a token pair and persists the refresh side
func (a *AuthServiceImpl) openSession(ctx context.Context, user *domain.User, now time.Time) (*domain.SessionResult, error) {
	branchIDs, err := a.userRepo.BranchIDs(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load branches: %w", err)
	}
	perms, err := a.permissions.PermissionsFor(user.Role)
	if err != nil {
		return nil, err
	}

	pair, err := a.tokenSvc.GeneratePair(user, branchIDs, perms)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	token := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: now.Add(a.config.RefreshTTL),
	}
	if err := a.refreshRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.SessionResult{
		User:         user.Profile(branchIDs),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// recordAttempt appends to the login trail. Failures here are logged
// and swallowed; bookkeeping never blocks authentication.
func (a *AuthServiceImpl) recordAttempt(ctx context.Context, input *domain.LoginInput, user *domain.User, success bool, reason string) {
	attempt := &domain.LoginAttempt{
		TenantID:  input.TenantID,
		Phone:     input.Phone,
		IPAddress: input.Meta.IPAddress,
		UserAgent: input.Meta.UserAgent,
		Success:   success,
		Reason:    reason,
	}
	if user != nil {
		userID := user.ID
		tenantID := user.TenantID
		attempt.UserID = &userID
		attempt.TenantID = &tenantID
	}
	if err := a.attemptRepo.Record(ctx, attempt); err != nil {
		a.logger.Warn("failed to record login attempt", zap.Error(err))
	}
}

func (a *AuthServiceImpl) auditLoginFailed(ctx context.Context, input *domain.LoginInput, user *domain.User, reason string) {
	event := domain.NewAuditEvent(domain.AuditLoginFailed).
		WithPhone(domain.MaskPhone(input.Phone)).
		WithClient(input.Meta).
		Failed(reason)
	if user != nil {
		event.WithUser(user.TenantID, user.ID)
	}
	a.audit.Log(ctx, event)
}

// applyNewPassword validates the candidate against policy and history,
// then stores the new hash and records it in the history.
func (a *AuthServiceImpl) applyNewPassword(ctx context.Context, user *domain.User, newPassword string) error {
	vErr := domain.NewValidationError()
	for _, violation := range a.policy.Validate(newPassword) {
		vErr.Add("new_password", violation)
	}
	if vErr.HasErrors() {
		return vErr.ErrOrNil()
	}

	recent, err := a.historyRepo.RecentHashes(ctx, user.ID, a.config.PasswordHistory)
	if err != nil {
		return fmt.Errorf("failed to load password history: %w", err)
	}
	if a.policy.IsReused(newPassword, recent) {
		return domain.NewValidationError().
			Add("new_password", "must differ from recently used passwords").
			ErrOrNil()
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := a.historyRepo.Add(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to record password history: %w", err)
	}
	return nil
}

// uniqueSlug derives a URL-safe slug from the tenant name, appending a
// random suffix while the plain form is taken. The unique index on the
// tenants table remains the final arbiter under concurrent registration.
func (a *AuthServiceImpl) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slugify(name)
	if base == "" {
		base = "tenant"
	}

	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		taken, err := a.tenantRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		suffix, err := randomSuffix()
		if err != nil {
			return "", err
		}
		candidate = base + "-" + suffix
	}
	return "", domain.ErrSlugTaken
}

// slugify lowercases the name and collapses every non-alphanumeric run
// into a single dash.
func slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	slug := b.String()
	if len(slug) > 48 {
		slug = strings.Trim(slug[:48], "-")
	}
	return slug
}

func randomSuffix() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate slug suffix: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*AuthServiceImpl)(nil)
