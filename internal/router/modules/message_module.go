package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/anon-inbox/internal/interface/http"
	"github.com/oksasatya/anon-inbox/internal/interface/middleware"
)

type MessageModule struct {
	Handler *handlers.MessageHandler
}

func NewMessageModule(h *handlers.MessageHandler) *MessageModule {
	return &MessageModule{Handler: h}
}

func (m *MessageModule) Register(rg *gin.RouterGroup) {
	// Public intake
	rg.POST("/send-message", m.Handler.SendMessage)

	auth := rg.Group("/")
	auth.Use(middleware.RequireSession())
	{
		auth.GET("/accept-messages", m.Handler.GetAcceptMessages)
		auth.POST("/accept-messages", m.Handler.SetAcceptMessages)
		auth.GET("/get-messages", m.Handler.GetMessages)
		auth.DELETE("/delete-message/:id", m.Handler.DeleteMessage)
	}
}
