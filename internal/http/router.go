package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/sritek/hospital-ops-sub000/domain"
	"github.com/sritek/hospital-ops-sub000/internal/http/handlers"
	"github.com/sritek/hospital-ops-sub000/internal/http/middleware"
)

// BuildRouter wires the identity endpoints. Everything under /auth is
// public except the session-scoped routes; /admin requires users:write
// on top of authentication.
func BuildRouter(ah *handlers.AuthHandlers, authmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/otp/request", ah.RequestOtp)
	auth.POST("/otp/verify", ah.VerifyOtp)
	auth.POST("/password/reset", ah.ResetPassword)

	session := r.Group("/auth").Use(authmw.WithJWT())
	session.GET("/me", ah.Me)
	session.POST("/logout", ah.Logout)
	session.POST("/logout-all", ah.LogoutAll)
	session.POST("/password/change", ah.ChangePassword)

	adm := r.Group("/admin").Use(authmw.WithJWT(), middleware.RequirePermission(domain.PermUsersWrite))
	adm.POST("/users/:id/unlock", ah.UnlockAccount)

	return r
}
