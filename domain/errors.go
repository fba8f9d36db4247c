package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Credential errors. Failed logins share one message on purpose so the
// response never reveals whether the phone is registered. The locked
// message is the single sanctioned exception.
var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrAccountLocked      = errors.New("account temporarily locked due to repeated failed logins")
)

// Token errors
var (
	ErrTokenInvalid        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenMalformed      = errors.New("malformed token")
	ErrRefreshTokenInvalid = errors.New("invalid or expired refresh token")
)

// OTP errors
var (
	ErrOtpInvalid   = errors.New("invalid verification code")
	ErrOtpExpired   = errors.New("verification code has expired")
	ErrOtpExhausted = errors.New("maximum verification attempts exceeded")
	ErrOtpNotFound  = errors.New("no pending verification code")
	ErrOtpThrottled = errors.New("verification code requested too recently")
)

// Conflict errors
var (
	ErrPhoneAlreadyRegistered = errors.New("phone number already registered")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrSlugTaken              = errors.New("tenant slug already in use")
)

// Authorization errors
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnknownRole      = errors.New("unknown role")
)

// Not-found errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrTenantNotFound = errors.New("tenant not found")
	ErrBranchNotFound = errors.New("branch not found")
)

// ValidationError reports every invalid request field at once so callers
// can fix a submission in a single round trip.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready to collect violations
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records a violation message for the named field
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors reports whether any violations were recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns e as an error when violations were recorded, nil otherwise.
// Use this instead of returning e directly to avoid a non-nil error interface
// wrapping an empty value.
func (e *ValidationError) ErrOrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
