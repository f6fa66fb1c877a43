package application

import (
	"errors"

	"github.com/oksasatya/anon-inbox/pkg/apperror"
)

var (
	ErrInvalidCredentials = apperror.Unauthenticated("invalid credentials")
	ErrNotAuthenticated   = apperror.Unauthenticated("not authenticated")

	ErrUsernameTaken = apperror.Conflict("username is already taken")
	ErrEmailTaken    = apperror.Conflict("email is already registered")

	ErrUserNotFound     = apperror.NotFound("user not found")
	ErrNoMessages       = apperror.NotFound("no messages found")
	ErrMessageNotFound  = apperror.NotFound("message not found or already deleted")
	ErrNotAccepting     = apperror.Forbidden("user is not accepting messages")
	ErrCodeFormat       = apperror.Validation("verification code must be exactly 6 digits")
	ErrCodeExpired      = apperror.Validation("verification code has expired, please sign up again to get a new code")
	ErrCodeMismatch     = apperror.Validation("verification code does not match")
	ErrMessageLength    = apperror.Validation("content must be between 10 and 1000 characters")
	ErrInvalidSignUpArg = apperror.Validation("username, email and password are required")
	ErrPasswordTooLong  = apperror.Validation("password must be at most 72 bytes long")
)

// Reasons a credential check fails. They stay internal: callers only ever see ErrInvalidCredentials.
var (
	ReasonUnknownEmail  = errors.New("no account for email")
	ReasonNotVerified   = errors.New("account not verified")
	ReasonWrongPassword = errors.New("password mismatch")
)
