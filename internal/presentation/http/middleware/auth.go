package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brewforge/shift-engine/internal/presentation/http/dto/response"
	"github.com/brewforge/shift-engine/pkg/utils"
)

// AuthMiddleware validates operator access tokens. Tokens are issued by the
// back-office auth system; this service only verifies them.
func AuthMiddleware(verifier *utils.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("operator_id", claims.OperatorID)
		c.Set("operator_name", claims.Name)
		c.Set("operator_roles", claims.Roles)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get("operator_roles")
		if !exists {
			response.ErrorWithCode(c, 403, "Access denied")
			c.Abort()
			return
		}

		operatorRoles, ok := val.([]string)
		if !ok {
			response.ErrorWithCode(c, 403, "Access denied")
			c.Abort()
			return
		}

		for _, have := range operatorRoles {
			for _, want := range roles {
				if have == want {
					c.Next()
					return
				}
			}
		}

		response.ErrorWithCode(c, 403, "Insufficient role privileges")
		c.Abort()
	}
}
