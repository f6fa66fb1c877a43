package application

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/anon-inbox/internal/domain/entity"
	repo "github.com/oksasatya/anon-inbox/internal/domain/repository"
	"github.com/oksasatya/anon-inbox/pkg/apperror"
)

const (
	MinMessageLength = 10
	MaxMessageLength = 1000
)

type InboxService struct {
	Users    repo.UserRepository
	Messages repo.MessageRepository
	Logger   *logrus.Logger

	now func() time.Time
}

func NewInboxService(users repo.UserRepository, messages repo.MessageRepository, logger *logrus.Logger) *InboxService {
	return &InboxService{Users: users, Messages: messages, Logger: logger, now: time.Now}
}

func notFoundOr(err, notFound error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return notFound
	}
	return apperror.Upstream(err)
}

// GetAcceptance reads the stored flag of the session user.
func (s *InboxService) GetAcceptance(ctx context.Context, userID string) (bool, error) {
	accept, err := s.Users.GetAcceptingMessages(ctx, userID)
	if err != nil {
		return false, notFoundOr(err, ErrUserNotFound)
	}
	return accept, nil
}

// SetAcceptance stores accept for the session user and returns the stored value.
func (s *InboxService) SetAcceptance(ctx context.Context, userID string, accept bool) (bool, error) {
	stored, err := s.Users.SetAcceptingMessages(ctx, userID, accept)
	if err != nil {
		return false, notFoundOr(err, ErrUserNotFound)
	}
	return stored, nil
}

// SendMessage appends an anonymous message to the recipient's inbox.
func (s *InboxService) SendMessage(ctx context.Context, targetUserID, content string) (*entity.Message, error) {
	if n := utf8.RuneCountInString(content); n < MinMessageLength || n > MaxMessageLength {
		return nil, ErrMessageLength
	}
	m, err := s.Messages.AppendMessage(ctx, targetUserID, content, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotAccepting):
			intake.Add("rejected_not_accepting", 1)
			return nil, ErrNotAccepting
		case errors.Is(err, repo.ErrNotFound):
			intake.Add("rejected_not_found", 1)
			return nil, ErrUserNotFound
		default:
			return nil, apperror.Upstream(err)
		}
	}
	intake.Add("accepted", 1)
	return m, nil
}

// ListMessages returns the session user's messages newest first.
// An empty inbox is reported as ErrNoMessages.
func (s *InboxService) ListMessages(ctx context.Context, userID string) ([]entity.Message, error) {
	u, err := s.Messages.GetWithMessages(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	if len(u.Messages) == 0 {
		return nil, ErrNoMessages
	}
	return u.Messages, nil
}

// DeleteMessage removes one of the session user's messages.
func (s *InboxService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	if err := s.Messages.DeleteMessage(ctx, userID, messageID); err != nil {
		return notFoundOr(err, ErrMessageNotFound)
	}
	return nil
}
