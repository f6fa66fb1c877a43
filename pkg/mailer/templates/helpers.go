package templates

import (
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithVerifyURL(url string) Option { return func(d *EmailData) { d.VerifyURL = url } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

// NewVerifyCodeData builds the data for the verify_code templates.
func NewVerifyCodeData(appName, supportURL, name, username, email, code string, opts ...Option) map[string]any {
	d := EmailData{
		Name:       name,
		Username:   username,
		Email:      email,
		AppName:    appName,
		SupportURL: supportURL,
		Code:       code,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
