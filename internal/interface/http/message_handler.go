package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/anon-inbox/internal/application"
	"github.com/oksasatya/anon-inbox/internal/domain/entity"
	"github.com/oksasatya/anon-inbox/internal/interface/middleware"
	"github.com/oksasatya/anon-inbox/pkg/helpers"
	"github.com/oksasatya/anon-inbox/pkg/response"
	"github.com/oksasatya/anon-inbox/pkg/validation"
)

type MessageHandler struct {
	Inbox   *application.InboxService
	Auth    *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewMessageHandler(inbox *application.InboxService, auth *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{Inbox: inbox, Auth: auth, Cookies: cookies, Logger: logger}
}

type MessageDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessageDTO(m entity.Message, _ int) MessageDTO {
	return MessageDTO{ID: m.ID, Content: m.Content, CreatedAt: m.CreatedAt}
}

// GetAcceptMessages GET /api/accept-messages (session required)
func (h *MessageHandler) GetAcceptMessages(c *gin.Context) {
	accept, err := h.Inbox.GetAcceptance(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"is_accepting_messages": accept}, "acceptance status", nil)
}

// SetAcceptMessages POST /api/accept-messages {accept_messages} (session required)
func (h *MessageHandler) SetAcceptMessages(c *gin.Context) {
	var req struct {
		AcceptMessages *bool `json:"accept_messages" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	claims, _ := middleware.SessionFrom(c)
	stored, err := h.Inbox.SetAcceptance(c.Request.Context(), claims.UserID, *req.AcceptMessages)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	h.refreshSession(c, claims, stored)
	response.Success(c, http.StatusOK, gin.H{"is_accepting_messages": stored}, "acceptance status updated", nil)
}

// refreshSession re-issues the cookie so its claims carry the stored flag.
func (h *MessageHandler) refreshSession(c *gin.Context, claims *helpers.SessionClaims, accept bool) {
	if h.Auth == nil {
		return
	}
	id := application.IdentityOf(claims)
	id.IsAcceptingMessages = accept
	sess, err := h.Auth.Issue(id)
	if err != nil {
		helpers.LogError(h.Logger, "session refresh failed", err, logrus.Fields{"user_id": id.ID})
		return
	}
	if err := h.Auth.SignOut(c.Request.Context(), claims); err != nil {
		helpers.LogError(h.Logger, "session revoke failed", err, logrus.Fields{"user_id": id.ID})
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
}

// GetMessages GET /api/get-messages (session required)
func (h *MessageHandler) GetMessages(c *gin.Context) {
	msgs, err := h.Inbox.ListMessages(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, lo.Map(msgs, toMessageDTO), "messages found", map[string]any{"count": len(msgs)})
}

// SendMessage POST /api/send-message {target_user_id, content}
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req struct {
		TargetUserID string `json:"target_user_id" binding:"required,uuid"`
		Content      string `json:"content" binding:"required,min=10,max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Inbox.SendMessage(c.Request.Context(), req.TargetUserID, req.Content)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toMessageDTO(*m, 0), "message sent", nil)
}

// DeleteMessage DELETE /api/delete-message/:id (session required)
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	if err := h.Inbox.DeleteMessage(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true, "id": c.Param("id")}, "message deleted", nil)
}
