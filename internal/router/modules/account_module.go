package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/anon-inbox/internal/interface/http"
)

type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/sign-up", m.Handler.SignUp)
	rg.POST("/verify-code", m.Handler.VerifyCode)
	rg.GET("/check-username-unique", m.Handler.CheckUsername)
	rg.GET("/u/:username", m.Handler.PublicProfile)
	rg.GET("/user/:id", m.Handler.PublicProfileByID)
}
