package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/anon-inbox/pkg/helpers"
)

type stubAuth map[string]*helpers.SessionClaims

func (s stubAuth) Authenticate(_ context.Context, token string) (*helpers.SessionClaims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := stubAuth{"good": {SessionUser: helpers.SessionUser{UserID: "u-1", Username: "alice"}}}
	r := gin.New()
	r.Use(RequestIDMiddleware(), Session(auth, helpers.NewCookie("sid", "", false)))
	r.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, "user=%s", UserID(c))
	})
	r.GET("/closed", RequireSession(), func(c *gin.Context) {
		claims, _ := SessionFrom(c)
		c.String(http.StatusOK, claims.Username)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSession(t *testing.T) {
	r := newEngine()

	t.Run("should treat a bad token as anonymous", func(t *testing.T) {
		w := get(r, "/open", "forged")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "user=", w.Body.String())
		require.NotEmpty(t, w.Header().Get(HeaderRequestID))
	})

	t.Run("should attach the identity of a good token", func(t *testing.T) {
		w := get(r, "/open", "good")
		require.Equal(t, "user=u-1", w.Body.String())
	})

	t.Run("should require a session", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, get(r, "/closed", "").Code)
		require.Equal(t, http.StatusUnauthorized, get(r, "/closed", "forged").Code)

		w := get(r, "/closed", "good")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "alice", w.Body.String())
	})
}
