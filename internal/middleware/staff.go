package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hoteldesk/internal/pkg/response"
	"hoteldesk/internal/pkg/staffauth"
)

// StaffAuth resolves the operator identity from the bearer token and puts it
// on the request context. Tokens are issued by the external identity system.
func StaffAuth(auth *staffauth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("operator_id", claims.OperatorID)
		c.Set("operator_name", claims.OperatorName)

		c.Next()
	}
}
