package entity

import (
	"time"
)

// User is the aggregate root for the inbox domain. It owns its Messages.
// Passwords are stored as bcrypt hashes in Password field
type User struct {
	ID                  string
	Name                string
	Username            string
	Email               string
	Password            string
	IsVerified          bool
	VerifyCode          string
	VerifyCodeExpires   time.Time
	IsAcceptingMessages bool
	Messages            []Message
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Identity is the projection of a user that may leave the service: no hash, no code.
type Identity struct {
	ID                  string
	Username            string
	Email               string
	IsVerified          bool
	IsAcceptingMessages bool
}

func (u *User) Identity() Identity {
	return Identity{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		IsVerified:          u.IsVerified,
		IsAcceptingMessages: u.IsAcceptingMessages,
	}
}

// CodeExpired reports whether the stored verification code is no longer usable at now.
func (u *User) CodeExpired(now time.Time) bool {
	return !now.Before(u.VerifyCodeExpires)
}
