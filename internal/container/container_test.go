package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/anon-inbox/config"
	"github.com/oksasatya/anon-inbox/pkg/mailer"
)

func TestNewCodeSender(t *testing.T) {
	cfg := config.Load()

	cfg.MailSendEnabled = false
	s, closeFn, err := NewCodeSender(cfg, nil)
	require.NoError(t, err)
	require.IsType(t, &mailer.LogSender{}, s)
	closeFn()

	cfg.MailSendEnabled = true
	cfg.MailDelivery = config.MailDeliveryDirect
	s, _, err = NewCodeSender(cfg, nil)
	require.NoError(t, err)
	require.IsType(t, &mailer.DirectSender{}, s)

	cfg.MailDelivery = "carrier-pigeon"
	_, _, err = NewCodeSender(cfg, nil)
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	cfg := config.Load()
	c := New(cfg, nil, nil)
	require.Nil(t, c.Redis)
	require.Equal(t, cfg.SessionTTL, c.JWT.TTL)
	require.Equal(t, cfg.SessionCookieName, c.Cookies.Name)
}
