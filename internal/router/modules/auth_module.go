package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/anon-inbox/internal/interface/http"
	"github.com/oksasatya/anon-inbox/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/sign-in", middleware.RealIP(), m.Handler.SignIn)
	rg.POST("/sign-out", m.Handler.SignOut)
	rg.GET("/auth/session", m.Handler.Session)
}
