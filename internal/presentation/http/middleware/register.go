package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/brewforge/shift-engine/internal/presentation/http/dto/response"
)

// RegisterIDHeader identifies the till a request is coming from. Each
// register keeps its own in-memory order, so the engine needs to know which
// one is talking.
const RegisterIDHeader = "X-Register-ID"

// defaultRegisterID is used when a deployment has a single till and does not
// send the header.
const defaultRegisterID = "register-1"

var registerIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// RegisterMiddleware resolves the register ID for the request and stores it
// in the Gin context.
func RegisterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		register := c.GetHeader(RegisterIDHeader)
		if register == "" {
			register = defaultRegisterID
		}
		if !registerIDPattern.MatchString(register) {
			response.BadRequest(c, "Invalid register ID")
			c.Abort()
			return
		}

		c.Set("register_id", register)
		c.Next()
	}
}
