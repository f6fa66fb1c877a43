package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMailgun_RequiresConfiguration(t *testing.T) {
	m := NewMailgun("mg.example.com", "", "Anon Inbox <no-reply@example.com>")
	require.False(t, m.Configured())
	require.Error(t, m.Send(context.Background(), "alice@example.com", "s", "t", ""))
	require.True(t, NewMailgun("mg.example.com", "key", "sender").Configured())
}
