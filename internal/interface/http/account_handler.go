package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/anon-inbox/internal/application"
	"github.com/oksasatya/anon-inbox/pkg/response"
	"github.com/oksasatya/anon-inbox/pkg/validation"
)

type AccountHandler struct {
	Accounts *application.AccountService
	Logger   *logrus.Logger
}

func NewAccountHandler(accounts *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Accounts: accounts, Logger: logger}
}

// SignUp POST /api/sign-up {name?, username, email, password}
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"omitempty,max=50"`
		Username string `json:"username" binding:"required,username"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Accounts.SignUp(c.Request.Context(), application.SignUpInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":                  res.UserID,
		"username":            res.Username,
		"email":               res.Email,
		"verify_code_expires": res.ExpiresAt,
	}, "user registered, please verify your email", nil)
}

// VerifyCode POST /api/verify-code {username, code}
func (h *AccountHandler) VerifyCode(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,username"`
		Code     string `json:"code" binding:"required,vcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		details := validation.ToDetails(err)
		msg := "invalid payload"
		if _, bad := details["code"]; bad {
			msg = application.ErrCodeFormat.Message
		}
		response.Error[any](c, http.StatusBadRequest, msg, details)
		return
	}
	res, err := h.Accounts.VerifyCode(c.Request.Context(), req.Username, req.Code)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	msg := "account verified"
	if res.AlreadyVerified {
		msg = "account already verified"
	}
	response.Success(c, http.StatusOK, gin.H{
		"username":         res.Username,
		"is_verified":      res.IsVerified,
		"already_verified": res.AlreadyVerified,
	}, msg, nil)
}

// CheckUsername GET /api/check-username-unique?username=
func (h *AccountHandler) CheckUsername(c *gin.Context) {
	var req struct {
		Username string `form:"username" binding:"required,username"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid username", validation.ToDetails(err))
		return
	}
	if err := h.Accounts.CheckUsername(c.Request.Context(), req.Username); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"username": req.Username, "available": true}, "username is available", nil)
}

// PublicProfile GET /api/u/:username
func (h *AccountHandler) PublicProfile(c *gin.Context) {
	p, err := h.Accounts.PublicProfile(c.Request.Context(), c.Param("username"))
	h.writeProfile(c, p, err)
}

// PublicProfileByID GET /api/user/:id
func (h *AccountHandler) PublicProfileByID(c *gin.Context) {
	p, err := h.Accounts.PublicProfileByID(c.Request.Context(), c.Param("id"))
	h.writeProfile(c, p, err)
}

func (h *AccountHandler) writeProfile(c *gin.Context, p *application.PublicProfile, err error) {
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":                    p.ID,
		"username":              p.Username,
		"is_accepting_messages": p.IsAcceptingMessages,
	}, "user found", nil)
}
