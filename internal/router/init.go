package router

import (
	"github.com/oksasatya/anon-inbox/internal/application"
	"github.com/oksasatya/anon-inbox/internal/container"
	pginfra "github.com/oksasatya/anon-inbox/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/anon-inbox/internal/interface/http"
	"github.com/oksasatya/anon-inbox/internal/interface/middleware"
	"github.com/oksasatya/anon-inbox/internal/router/modules"
)

type Services struct {
	Auth     *application.AuthService
	Accounts *application.AccountService
	Inbox    *application.InboxService
}

// BuildServices wires repositories and services from the container.
func BuildServices(c *container.Container) Services {
	users := pginfra.NewUserRepository(c.DB)
	messages := pginfra.NewMessageRepository(c.DB)

	return Services{
		Auth:     application.NewAuthService(users, c.JWT, c.Redis, c.Logger),
		Accounts: application.NewAccountService(users, c.Mail, c.Logger, c.Config.VerifyCodeTTL),
		Inbox:    application.NewInboxService(users, messages, c.Logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container, svc Services) {
	r.Use(middleware.Session(svc.Auth, c.Cookies))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, c.Cookies, c.Logger)))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(svc.Accounts, c.Logger)))
	r.Add(modules.NewMessageModule(handlers.NewMessageHandler(svc.Inbox, svc.Auth, c.Cookies, c.Logger)))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(c.DB, c.Logger)))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
