package middleware

import (
	"log/slog"
	"net/http"

	"roomstay-admin/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	sessions session.Provider
}

const ctxIdentityKey = "session_identity"

func NewAuthMiddleware(sessions session.Provider) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireSession rejects requests when no upstream login is active.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := m.sessions.Current(c.Request.Context())
		if err != nil {
			slog.Warn("Session lookup failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Please log in again",
			})
			c.Abort()
			return
		}

		c.Set(ctxIdentityKey, ident)
		c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !ident.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetIdentity(c *gin.Context) (session.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return session.Identity{}, false
	}

	ident, ok := v.(session.Identity)
	return ident, ok
}
