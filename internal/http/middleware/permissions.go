package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// RequirePermission gates a route on the permissions carried by the
// access token. The token is the source of truth: a role change takes
// effect when the token is next refreshed, not before.
func RequirePermission(required ...domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("permissions")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			c.Abort()
			return
		}
		held, ok := value.([]domain.Permission)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			c.Abort()
			return
		}

		for _, need := range required {
			for _, perm := range held {
				if perm == need {
					c.Next()
					return
				}
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		c.Abort()
	}
}
