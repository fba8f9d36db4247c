package domain

import (
	"context"
	"time"
)

// AuditAction identifies the kind of security-relevant event that occurred
type AuditAction string

const (
	// Authentication events
	AuditLoginSucceeded AuditAction = "login.succeeded"
	AuditLoginFailed    AuditAction = "login.failed"
	AuditAccountLocked  AuditAction = "account.locked"
	AuditLogout         AuditAction = "logout"
	AuditLogoutAll      AuditAction = "logout.all"
	AuditTokenRefreshed AuditAction = "token.refreshed"

	// Account lifecycle events
	AuditTenantRegistered AuditAction = "tenant.registered"
	AuditAccountUnlocked  AuditAction = "account.unlocked"
	AuditPasswordChanged  AuditAction = "password.changed"
	AuditPasswordReset    AuditAction = "password.reset"

	// OTP events
	AuditOtpRequested AuditAction = "otp.requested"
	AuditOtpVerified  AuditAction = "otp.verified"
	AuditOtpFailed    AuditAction = "otp.failed"
)

// AuditEvent records a security-relevant action for downstream consumers.
// Phone numbers carried here must already be masked; events never contain
// passwords, codes, or tokens.
type AuditEvent struct {
	ID        string         `json:"id"`
	Action    AuditAction    `json:"action"`
	TenantID  uint           `json:"tenant_id,omitempty"`
	UserID    uint           `json:"user_id,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Success   bool           `json:"success"`
	Reason    string         `json:"reason,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewAuditEvent creates an audit event with common fields populated
func NewAuditEvent(action AuditAction) *AuditEvent {
	return &AuditEvent{
		Action:    action,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]any),
		Success:   true,
	}
}

// WithUser sets the acting user and their tenant
func (e *AuditEvent) WithUser(tenantID, userID uint) *AuditEvent {
	e.TenantID = tenantID
	e.UserID = userID
	return e
}

// WithPhone sets the masked phone the event concerns
func (e *AuditEvent) WithPhone(masked string) *AuditEvent {
	e.Phone = masked
	return e
}

// WithClient sets client metadata captured from the request
func (e *AuditEvent) WithClient(meta LoginMeta) *AuditEvent {
	e.IPAddress = meta.IPAddress
	e.UserAgent = meta.UserAgent
	return e
}

// WithMetadata attaches an extra key to the event
func (e *AuditEvent) WithMetadata(key string, value any) *AuditEvent {
	e.Metadata[key] = value
	return e
}

// Failed marks the event unsuccessful with the given reason
func (e *AuditEvent) Failed(reason string) *AuditEvent {
	e.Success = false
	e.Reason = reason
	return e
}

// AuditLogger records audit events. Implementations must not block the
// caller and must swallow delivery failures; auditing never aborts the
// operation being audited.
type AuditLogger interface {
	Log(ctx context.Context, event *AuditEvent)
}
