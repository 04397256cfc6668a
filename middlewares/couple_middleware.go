package middlewares

import (
	"net/http"

	"github.com/DBN92/our-journey-together/services"

	"github.com/gin-gonic/gin"
)

// CoupleMiddleware resolves the caller's couple membership and stores
// the couple id on the context. Routes behind it can assume a tenant.
func CoupleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("userID")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, ok := v.(uint)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		couple, err := services.CoupleForUser(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "complete onboarding first"})
			return
		}

		c.Set("coupleID", couple.ID)
		c.Next()
	}
}
