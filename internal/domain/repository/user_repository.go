//go:generate mockgen -source=user_repository.go -destination=../../application/mocks/user_repository_mock.go -package=mocks

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/anon-inbox/internal/domain/entity"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNotAccepting  = errors.New("user is not accepting messages")
	ErrUsernameTaken = errors.New("username taken")
	ErrEmailTaken    = errors.New("email taken")
)

// UserRepository defines the interface for user and message persistence.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetVerifiedByUsername ignores unverified accounts.
	GetVerifiedByUsername(ctx context.Context, username string) (*entity.User, error)

	// UpsertUnverified creates u or reissues the unverified account holding u.Email.
	// Unverified accounts holding u.Username under another email are removed.
	// Returns ErrUsernameTaken / ErrEmailTaken when a verified account owns either key.
	UpsertUnverified(ctx context.Context, u *entity.User) error
	MarkVerified(ctx context.Context, id string) error

	GetAcceptingMessages(ctx context.Context, id string) (bool, error)
	SetAcceptingMessages(ctx context.Context, id string, accept bool) (bool, error)
}

// MessageRepository owns the message collection of a user.
type MessageRepository interface {
	// AppendMessage stores content for a verified recipient that accepts messages,
	// in one statement. ErrNotFound or ErrNotAccepting otherwise.
	AppendMessage(ctx context.Context, userID, content string, at time.Time) (*entity.Message, error)
	// GetWithMessages returns the user with Messages ordered newest first.
	GetWithMessages(ctx context.Context, userID string) (*entity.User, error)
	DeleteMessage(ctx context.Context, userID, messageID string) error
}
