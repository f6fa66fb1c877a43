package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/anon-inbox/pkg/mailer/templates"
)

// Publisher puts a JSON body on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Deliverer hands a rendered email to the provider.
type Deliverer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Brand carries the links and names rendered into every email.
type Brand struct {
	AppName    string
	SupportURL string
	VerifyURL  func(username string) string
}

func (b Brand) job(v VerificationCode) EmailJob {
	opts := []mailtpl.Option{mailtpl.WithExpiresAt(v.ExpiresAt)}
	if b.VerifyURL != nil {
		opts = append(opts, mailtpl.WithVerifyURL(b.VerifyURL(v.Username)))
	}
	data := mailtpl.NewVerifyCodeData(b.AppName, b.SupportURL, v.Name, v.Username, v.To, v.Code, opts...)
	return EmailJob{To: v.To, Template: mailtpl.VerifyCode, Data: data}
}

// QueueSender publishes verification emails for cmd/email_worker.
type QueueSender struct {
	Pub   Publisher
	Brand Brand
}

func NewQueueSender(pub Publisher, brand Brand) *QueueSender {
	return &QueueSender{Pub: pub, Brand: brand}
}

func (s *QueueSender) SendVerificationCode(ctx context.Context, v VerificationCode) error {
	if s.Pub == nil {
		return errors.New("email queue is not configured")
	}
	if err := s.Pub.PublishJSON(ctx, s.Brand.job(v)); err != nil {
		return fmt.Errorf("publish verification email: %w", err)
	}
	return nil
}

// DirectSender renders and sends in the request path.
type DirectSender struct {
	Mail  Deliverer
	Brand Brand
}

func NewDirectSender(mail Deliverer, brand Brand) *DirectSender {
	return &DirectSender{Mail: mail, Brand: brand}
}

func (s *DirectSender) SendVerificationCode(ctx context.Context, v VerificationCode) error {
	return Deliver(ctx, s.Mail, s.Brand.job(v))
}

// LogSender only logs; used when MAIL_SEND_ENABLED=false.
type LogSender struct {
	Logger *logrus.Logger
}

func (s *LogSender) SendVerificationCode(_ context.Context, v VerificationCode) error {
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"to":       v.To,
			"username": v.Username,
			"expires":  v.ExpiresAt,
		}).Info("email sending disabled; verification code not sent")
	}
	return nil
}

// Deliver renders job if it names a template and sends it.
func Deliver(ctx context.Context, d Deliverer, job EmailJob) error {
	if job.To == "" {
		return errors.New("email job has no recipient")
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("render %s: %w", job.Template, err)
		}
		subject, text, html = strings.TrimSpace(s), t, h
	}
	return d.Send(ctx, job.To, subject, text, html)
}
