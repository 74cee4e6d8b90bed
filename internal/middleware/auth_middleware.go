// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	xerrors "realty-service/internal/pkg/errors"
	"realty-service/internal/pkg/response"
	authsvc "realty-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

const (
	// SessionTokenHeader carries the re-signed token back to the client.
	SessionTokenHeader   = "X-Session-Token"
	SessionExpiresHeader = "X-Session-Expires-At"

	ctxAdminKey   = "admin"
	ctxSessionKey = "session"
)

// SessionRefresher validates a token against the stored session version.
type SessionRefresher interface {
	RefreshSession(ctx context.Context, token string) (*authsvc.Session, error)
}

type AuthMiddleware struct {
	sessions SessionRefresher
}

func NewAuthMiddleware(sessions SessionRefresher) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Auth re-derives the session on every request, so a token superseded by a
// newer login or a password change is refused here.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		sess, err := m.sessions.RefreshSession(c.Request.Context(), token)
		if err != nil {
			response.FromError(c, err)
			return
		}

		SetAdmin(c, sess.Admin)
		c.Set(ctxSessionKey, sess)
		c.Header(SessionTokenHeader, sess.Token)
		c.Header(SessionExpiresHeader, sess.ExpiresAt.UTC().Format(time.RFC3339))

		c.Next()
	}
}

// RequireVerified denies unverified accounts. MUST be used after Auth().
func (m *AuthMiddleware) RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := GetAdmin(c)
		if !ok {
			response.FromError(c, xerrors.ErrUnauthorized)
			return
		}
		if !a.IsVerified {
			response.FromError(c, xerrors.ErrNotVerified)
			return
		}
		c.Next()
	}
}

// CMS returns Auth + RequireVerified, the guard for every content route.
func (m *AuthMiddleware) CMS() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireVerified(),
	}
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
