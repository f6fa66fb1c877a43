package handlers

import (
	"time"

	"github.com/oksasatya/anon-inbox/pkg/helpers"
)

// SessionView is the display-only projection of a session.
type SessionView struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
}

type SessionUser struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	IsVerified          bool   `json:"is_verified"`
	IsAcceptingMessages bool   `json:"is_accepting_messages"`
}

func sessionView(c *helpers.SessionClaims) SessionView {
	if c == nil {
		return SessionView{}
	}
	v := SessionView{
		Authenticated: true,
		User: &SessionUser{
			ID:                  c.UserID,
			Username:            c.Username,
			Email:               c.Email,
			IsVerified:          c.IsVerified,
			IsAcceptingMessages: c.IsAcceptingMessages,
		},
	}
	if c.ExpiresAt != nil {
		exp := c.ExpiresAt.Time
		v.ExpiresAt = &exp
	}
	return v
}
