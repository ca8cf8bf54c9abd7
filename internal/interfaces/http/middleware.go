package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tinashem/employee-portal/internal/application/service"
	"github.com/tinashem/employee-portal/internal/domain/entity"
)

const principalKey = "principal"

// authMiddleware validates the Bearer token and stores the resolved
// principal on the request.
func authMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing or malformed authorization header",
			})
			return
		}

		principal, err := service.ParseToken(token, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "invalid or expired session",
			})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// userAgentMiddleware threads the caller's user agent into the request
// context so the audit trail can record it.
func userAgentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := service.WithUserAgent(c.Request.Context(), c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// principalFrom returns the authenticated principal, or nil on
// unauthenticated routes.
func principalFrom(c *gin.Context) *entity.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*entity.Principal); ok {
			return p
		}
	}
	return nil
}
