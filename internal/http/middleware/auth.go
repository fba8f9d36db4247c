package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// AuthMW wraps the token service for route wiring
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithJWT returns the bearer-token middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return Authentication(mw.tokenSvc)
}
