package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/anon-inbox/internal/application"
	"github.com/oksasatya/anon-inbox/internal/interface/middleware"
	"github.com/oksasatya/anon-inbox/pkg/apperror"
	"github.com/oksasatya/anon-inbox/pkg/helpers"
	"github.com/oksasatya/anon-inbox/pkg/response"
	"github.com/oksasatya/anon-inbox/pkg/validation"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: cookies, Logger: logger}
}

// SignIn POST /api/sign-in {email, password}
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeUnauthenticated && h.Logger != nil {
			h.Logger.WithFields(logrus.Fields{
				"ip":     middleware.ClientIP(c),
				"reason": errors.Unwrap(err),
			}).Warn("sign-in rejected")
		}
		response.Fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusOK, sessionView(sess.Claims), "signed in", nil)
}

// SignOut POST /api/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	if claims, ok := middleware.SessionFrom(c); ok {
		if err := h.Auth.SignOut(c.Request.Context(), claims); err != nil {
			helpers.LogError(h.Logger, "session revoke failed", err, logrus.Fields{"user_id": claims.UserID})
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"signed_out": true}, "signed out", nil)
}

// Session GET /api/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	claims, _ := middleware.SessionFrom(c)
	response.Success(c, http.StatusOK, sessionView(claims), "session", nil)
}
