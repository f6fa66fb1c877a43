package container

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/anon-inbox/config"
	"github.com/oksasatya/anon-inbox/internal/application"
	"github.com/oksasatya/anon-inbox/internal/infrastructure/postgres"
	"github.com/oksasatya/anon-inbox/pkg/helpers"
	"github.com/oksasatya/anon-inbox/pkg/mailer"
)

// Container holds the infrastructure built in main and shared by every module.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	DB      *postgres.DB
	Redis   *redis.Client // nil disables session revocation
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Mail    application.CodeSender
}

// New builds the session helpers from cfg. Mail defaults to logging only.
func New(cfg *config.Config, logger *logrus.Logger, db *postgres.DB) *Container {
	return &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		JWT:     helpers.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SessionIssuer),
		Cookies: helpers.NewCookie(cfg.SessionCookieName, cfg.CookieDomain, cfg.CookieSecure),
		Mail:    &mailer.LogSender{Logger: logger},
	}
}

func brand(cfg *config.Config) mailer.Brand {
	return mailer.Brand{AppName: cfg.AppName, SupportURL: cfg.SupportURL, VerifyURL: cfg.VerifyURL}
}

// NewCodeSender picks how verification codes leave the service. The returned
// func releases whatever connection the sender holds.
func NewCodeSender(cfg *config.Config, logger *logrus.Logger) (application.CodeSender, func(), error) {
	noop := func() {}
	if !cfg.MailSendEnabled {
		return &mailer.LogSender{Logger: logger}, noop, nil
	}
	switch cfg.MailDelivery {
	case config.MailDeliveryDirect:
		mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		return mailer.NewDirectSender(mg, brand(cfg)), noop, nil
	case config.MailDeliveryQueue:
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, noop, fmt.Errorf("connect email queue: %w", err)
		}
		return mailer.NewQueueSender(pub, brand(cfg)), pub.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown MAIL_DELIVERY %q", cfg.MailDelivery)
	}
}
