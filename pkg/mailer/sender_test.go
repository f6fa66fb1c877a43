package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/anon-inbox/pkg/mailer/templates"
)

type fakePublisher struct {
	bodies []any
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.bodies = append(f.bodies, body)
	return f.err
}

type sent struct{ to, subject, text, html string }

type fakeDeliverer struct{ got []sent }

func (f *fakeDeliverer) Send(_ context.Context, to, subject, text, html string) error {
	f.got = append(f.got, sent{to, subject, text, html})
	return nil
}

var brand = Brand{
	AppName:    "Anon Inbox",
	SupportURL: "https://inbox.test/help",
	VerifyURL:  func(u string) string { return "https://inbox.test/verify/" + u },
}

var aliceCode = VerificationCode{
	To:        "alice@example.com",
	Name:      "Alice",
	Username:  "alice",
	Code:      "482913",
	ExpiresAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
}

func TestQueueSender(t *testing.T) {
	req := require.New(t)
	pub := &fakePublisher{}

	req.NoError(NewQueueSender(pub, brand).SendVerificationCode(context.Background(), aliceCode))
	req.Len(pub.bodies, 1)
	job, ok := pub.bodies[0].(EmailJob)
	req.True(ok)
	req.Equal("alice@example.com", job.To)
	req.Equal(mailtpl.VerifyCode, job.Template)
	req.Equal("482913", job.Data["Code"])
	req.Equal("https://inbox.test/verify/alice", job.Data["VerifyURL"])

	pub.err = errors.New("channel closed")
	req.Error(NewQueueSender(pub, brand).SendVerificationCode(context.Background(), aliceCode))
	req.Error(NewQueueSender(nil, brand).SendVerificationCode(context.Background(), aliceCode))
}

func TestDirectSender_RendersTemplates(t *testing.T) {
	req := require.New(t)
	d := &fakeDeliverer{}

	req.NoError(NewDirectSender(d, brand).SendVerificationCode(context.Background(), aliceCode))
	req.Len(d.got, 1)
	msg := d.got[0]
	req.Equal("alice@example.com", msg.to)
	req.Contains(msg.subject, "482913")
	req.Contains(msg.text, "Hi Alice,")
	req.Contains(msg.text, "02 January 2026, 15:04 UTC")
	req.Contains(msg.html, "@alice")
	req.Contains(msg.html, "https://inbox.test/verify/alice")
}

func TestDeliver_RequiresRecipient(t *testing.T) {
	require.Error(t, Deliver(context.Background(), &fakeDeliverer{}, EmailJob{Subject: "x"}))
}
