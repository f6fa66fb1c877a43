package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/anon-inbox/internal/application"
	handlers "github.com/oksasatya/anon-inbox/internal/interface/http"
	"github.com/oksasatya/anon-inbox/internal/interface/middleware"
	"github.com/oksasatya/anon-inbox/internal/router"
	"github.com/oksasatya/anon-inbox/internal/router/modules"
	"github.com/oksasatya/anon-inbox/pkg/helpers"
	"github.com/oksasatya/anon-inbox/pkg/mailer"
	"github.com/oksasatya/anon-inbox/pkg/validation"
)

const cookieName = "session_token"

type outbox struct {
	mu   sync.Mutex
	sent []mailer.VerificationCode
}

func (o *outbox) SendVerificationCode(_ context.Context, v mailer.VerificationCode) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, v)
	return nil
}

func (o *outbox) last() mailer.VerificationCode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sent[len(o.sent)-1]
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t       *testing.T
	handler http.Handler
	session string
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: c.session})
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName {
			c.session = ck.Value
		}
	}
	var env envelope
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func newServer(t *testing.T) (http.Handler, *outbox) {
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := newMemoryStore()
	mail := &outbox{}
	jwt := helpers.NewJWTManager("test-secret", time.Hour, "anon-inbox")
	cookies := helpers.NewCookie(cookieName, "", false)

	auth := application.NewAuthService(store, jwt, nil, nil)
	accounts := application.NewAccountService(store, mail, nil, time.Hour)
	inbox := application.NewInboxService(store, store, nil)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := router.NewRegistry(r)
	reg.Use(middleware.Session(auth, cookies))
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(auth, cookies, nil)))
	reg.Add(modules.NewAccountModule(handlers.NewAccountHandler(accounts, nil)))
	reg.Add(modules.NewMessageModule(handlers.NewMessageHandler(inbox, auth, cookies, nil)))
	reg.RegisterAll()
	return r, mail
}

func TestAliceScenario(t *testing.T) {
	h, mail := newServer(t)
	alice := &client{t: t, handler: h}
	anon := &client{t: t, handler: h}

	w, env := alice.do(http.MethodPost, "/api/sign-up", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "wonderland",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	code := mail.last().Code
	require.Len(t, code, 6)

	w, env = alice.do(http.MethodPost, "/api/sign-in", map[string]string{"email": "alice@example.com", "password": "wonderland"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid credentials", env.Message)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	w, env = alice.do(http.MethodPost, "/api/verify-code", map[string]string{"username": "alice", "code": wrong})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "verification code does not match", env.Message)

	w, _ = alice.do(http.MethodPost, "/api/verify-code", map[string]string{"username": "alice", "code": code})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = alice.do(http.MethodPost, "/api/sign-in", map[string]string{"email": "alice@example.com", "password": "not-it"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid credentials", env.Message)

	w, _ = alice.do(http.MethodPost, "/api/sign-in", map[string]string{"email": "alice@example.com", "password": "wonderland"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, alice.session)

	w, env = anon.do(http.MethodGet, "/api/u/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		ID                  string `json:"id"`
		IsAcceptingMessages bool   `json:"is_accepting_messages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	require.True(t, profile.IsAcceptingMessages)

	w, env = anon.do(http.MethodGet, "/api/user/"+profile.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var byID struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &byID))
	require.Equal(t, "alice", byID.Username)

	send := func() int {
		w, _ := anon.do(http.MethodPost, "/api/send-message", map[string]string{
			"target_user_id": profile.ID, "content": "you are awesome",
		})
		return w.Code
	}
	require.Equal(t, http.StatusCreated, send())

	w, _ = anon.do(http.MethodPost, "/api/accept-messages", map[string]bool{"accept_messages": false})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	before := alice.session
	w, _ = alice.do(http.MethodPost, "/api/accept-messages", map[string]bool{"accept_messages": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEqual(t, before, alice.session)
	require.Equal(t, http.StatusForbidden, send())

	w, env = alice.do(http.MethodGet, "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view handlers.SessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.True(t, view.Authenticated)
	require.False(t, view.User.IsAcceptingMessages)

	w, _ = alice.do(http.MethodPost, "/api/accept-messages", map[string]bool{"accept_messages": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusCreated, send())

	w, env = alice.do(http.MethodGet, "/api/get-messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var msgs []handlers.MessageDTO
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	require.Len(t, msgs, 2)
	require.False(t, msgs[0].CreatedAt.Before(msgs[1].CreatedAt))

	w, _ = alice.do(http.MethodDelete, "/api/delete-message/"+msgs[0].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = alice.do(http.MethodDelete, "/api/delete-message/"+msgs[0].ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, env = anon.do(http.MethodPost, "/api/sign-up", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "wonderland",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "username is already taken", env.Message)

	w, _ = alice.do(http.MethodPost, "/api/sign-out", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, alice.session)
	w, _ = alice.do(http.MethodGet, "/api/get-messages", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidationErrors(t *testing.T) {
	h, _ := newServer(t)
	c := &client{t: t, handler: h}

	w, env := c.do(http.MethodPost, "/api/sign-up", map[string]string{
		"username": "bad-name", "email": "x@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, env.Success)

	w, _ = c.do(http.MethodPost, "/api/send-message", map[string]string{
		"target_user_id": "not-a-uuid", "content": "you are awesome",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = c.do(http.MethodPost, "/api/send-message", map[string]string{
		"target_user_id": "7b0c8a52-7d84-4f43-a1f6-9d1f0ab5c8e1", "content": "you are awesome",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	for _, code := range []string{"12ab56", "12345", "1234567"} {
		w, env = c.do(http.MethodPost, "/api/verify-code", map[string]string{"username": "alice", "code": code})
		require.Equal(t, http.StatusBadRequest, w.Code, code)
		require.Equal(t, "verification code must be exactly 6 digits", env.Message, code)
	}

	w, env = c.do(http.MethodPost, "/api/sign-up", map[string]string{
		"username": "carol", "email": "carol@example.com", "password": strings.Repeat("é", 40),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, env.Success)

	w, _ = c.do(http.MethodGet, "/api/user/7b0c8a52-7d84-4f43-a1f6-9d1f0ab5c8e1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = c.do(http.MethodGet, "/api/check-username-unique?username=alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = c.do(http.MethodGet, "/api/check-username-unique?username=a-b", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, env = c.do(http.MethodGet, "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view handlers.SessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.False(t, view.Authenticated)
}
