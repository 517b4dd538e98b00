package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RequireAccessToken verifies a bearer access token and injects the
// caller's identity into request context. Access tokens are never read
// from the cookie; only the Authorization header counts.
//
// Missing header is 401, a token that fails verification is 403. The
// middleware enforces no per-route role policy; handlers layer that on
// via RequireAnyRole or auth.HasRole.
func RequireAccessToken(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		claims, err := m.VerifyAccess(tok, time.Now())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			return
		}

		ctx := WithIdentity(c.Request.Context(), claims.Username, claims.Roles)
		c.Request = c.Request.WithContext(ctx)

		// Also store on gin context for handler convenience.
		c.Set("username", claims.Username)
		c.Set("roles", claims.Roles)

		c.Next()
	}
}

// RequireAnyRole rejects authenticated callers holding none of the given
// roles. Must run after RequireAccessToken.
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, role := range roles {
			if HasRole(c.Request.Context(), role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	}
}
