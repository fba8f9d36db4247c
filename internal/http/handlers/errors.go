package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// writeError translates a service error into an HTTP response. Every
// handler funnels through here so the status mapping lives in one place.
func writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": vErr.Fields,
		})
		return
	}

	c.JSON(statusFor(err), gin.H{"error": publicMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountLocked),
		errors.Is(err, domain.ErrRefreshTokenInvalid),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrOtpInvalid),
		errors.Is(err, domain.ErrOtpExpired),
		errors.Is(err, domain.ErrOtpExhausted),
		errors.Is(err, domain.ErrOtpNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTenantNotFound),
		errors.Is(err, domain.ErrBranchNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPhoneAlreadyRegistered),
		errors.Is(err, domain.ErrEmailAlreadyRegistered),
		errors.Is(err, domain.ErrSlugTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrOtpThrottled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage keeps internal failure detail out of responses. Domain
// sentinels carry caller-safe text and are written as-is; anything else
// collapses to a generic message.
func publicMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidCredentials,
		domain.ErrAccountLocked,
		domain.ErrRefreshTokenInvalid,
		domain.ErrTokenExpired,
		domain.ErrTokenMalformed,
		domain.ErrTokenInvalid,
		domain.ErrOtpInvalid,
		domain.ErrOtpExpired,
		domain.ErrOtpExhausted,
		domain.ErrOtpNotFound,
		domain.ErrOtpThrottled,
		domain.ErrPermissionDenied,
		domain.ErrUserNotFound,
		domain.ErrTenantNotFound,
		domain.ErrBranchNotFound,
		domain.ErrPhoneAlreadyRegistered,
		domain.ErrEmailAlreadyRegistered,
		domain.ErrSlugTaken,
	}
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal error"
}
