package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo-backend/internal/auth"
)

// subjectKey is the gin context key holding the authenticated user id.
const subjectKey = "authSubject"

// RequireAuth extracts the bearer token from the Authorization header,
// verifies it, and stores the subject id on the context. It is a pure
// function of the token; no database access happens here.
func RequireAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		subject, err := issuer.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// subjectFromContext returns the authenticated user id set by RequireAuth.
func subjectFromContext(c *gin.Context) string {
	return c.GetString(subjectKey)
}
