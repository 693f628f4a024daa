package middleware

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strings"
	"memoria/pkg/utils"
)

func JWTAuthMiddleware() gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)

		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Pass caller identity to the next handler. The pipeline trusts
		// these claims; it does not own authentication.
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("verified", claims.Verified)
		c.Set("suspended", claims.Suspended)
		c.Next()
	}
}

func RoleMiddleware(requiredRole string) gin.HandlerFunc {

	return func(c *gin.Context) {
		role := c.GetString("role")

		if role != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// NotSuspendedMiddleware blocks state-mutating contribution endpoints for
// suspended accounts.
func NotSuspendedMiddleware() gin.HandlerFunc {

	return func(c *gin.Context) {
		if c.GetBool("suspended") {
			utils.RespondError(c, http.StatusForbidden, "Account is suspended")
			c.Abort()
			return
		}

		c.Next()
	}
}
