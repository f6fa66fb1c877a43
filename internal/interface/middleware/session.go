package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/anon-inbox/pkg/helpers"
	"github.com/oksasatya/anon-inbox/pkg/response"
)

const (
	ctxSession = "session"
	ctxUserID  = "userID"
)

// Authenticator turns a raw session token into claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*helpers.SessionClaims, error)
}

// Session resolves the session cookie into claims. It never rejects a request:
// a missing, invalid, expired or revoked token leaves the caller anonymous.
func Session(auth Authenticator, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Session(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err == nil {
			c.Set(ctxSession, claims)
			c.Set(ctxUserID, claims.UserID)
		}
		c.Next()
	}
}

// RequireSession aborts with 401 unless Session attached an identity.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			response.Error[any](c, http.StatusUnauthorized, "not authenticated", "UNAUTHENTICATED")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFrom returns the claims attached by Session.
func SessionFrom(c *gin.Context) (*helpers.SessionClaims, bool) {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*helpers.SessionClaims)
	return claims, ok && claims != nil
}

// UserID returns the session user's id, or "".
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
