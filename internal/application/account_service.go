//go:generate mockgen -source=account_service.go -destination=mocks/code_sender_mock.go -package=mocks

package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/anon-inbox/internal/domain/entity"
	repo "github.com/oksasatya/anon-inbox/internal/domain/repository"
	"github.com/oksasatya/anon-inbox/pkg/apperror"
	"github.com/oksasatya/anon-inbox/pkg/helpers"
	"github.com/oksasatya/anon-inbox/pkg/mailer"
)

const DefaultVerifyCodeTTL = time.Hour

// CodeSender delivers the verification code to a new or reissued account.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, v mailer.VerificationCode) error
}

type AccountService struct {
	Users   repo.UserRepository
	Mail    CodeSender
	Logger  *logrus.Logger
	CodeTTL time.Duration

	now     func() time.Time
	newCode func() (string, error)
}

func NewAccountService(users repo.UserRepository, mail CodeSender, logger *logrus.Logger, codeTTL time.Duration) *AccountService {
	if codeTTL <= 0 {
		codeTTL = DefaultVerifyCodeTTL
	}
	return &AccountService{
		Users:   users,
		Mail:    mail,
		Logger:  logger,
		CodeTTL: codeTTL,
		now:     time.Now,
		newCode: helpers.GenOTPCode,
	}
}

type SignUpInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

type SignUpResult struct {
	UserID    string
	Username  string
	Email     string
	ExpiresAt time.Time
}

// SignUp creates an unverified account, or reissues a code to the unverified
// account already holding the email, and sends the code.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrInvalidSignUpArg
	}
	if strings.TrimSpace(in.Name) == "" {
		in.Name = in.Username
	}

	if _, err := s.Users.GetVerifiedByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Upstream(err)
	}

	existing, err := s.Users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing.IsVerified:
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, apperror.Upstream(err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, apperror.Upstream(err)
	}
	code, err := s.newCode()
	if err != nil {
		return nil, apperror.Upstream(err)
	}

	u := &entity.User{
		Name:              in.Name,
		Username:          in.Username,
		Email:             in.Email,
		Password:          hash,
		VerifyCode:        code,
		VerifyCodeExpires: s.now().Add(s.CodeTTL),
	}
	if err := s.Users.UpsertUnverified(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrUsernameTaken):
			return nil, ErrUsernameTaken
		case errors.Is(err, repo.ErrEmailTaken):
			return nil, ErrEmailTaken
		default:
			return nil, apperror.Upstream(err)
		}
	}

	if err := s.Mail.SendVerificationCode(ctx, mailer.VerificationCode{
		To:        u.Email,
		Name:      u.Name,
		Username:  u.Username,
		Code:      code,
		ExpiresAt: u.VerifyCodeExpires,
	}); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("send verification code failed")
		}
		return nil, apperror.Upstream(err)
	}

	return &SignUpResult{UserID: u.ID, Username: u.Username, Email: u.Email, ExpiresAt: u.VerifyCodeExpires}, nil
}

type VerifyResult struct {
	Username        string
	IsVerified      bool
	AlreadyVerified bool
}

func isVerifyCode(code string) bool {
	if len(code) != helpers.VerifyCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// VerifyCode flips the account to verified when code matches and has not expired.
// Verifying an already verified account succeeds without changes.
func (s *AccountService) VerifyCode(ctx context.Context, username, code string) (*VerifyResult, error) {
	if !isVerifyCode(code) {
		return nil, ErrCodeFormat
	}
	u, err := s.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperror.Upstream(err)
	}
	if u.IsVerified {
		return &VerifyResult{Username: u.Username, IsVerified: true, AlreadyVerified: true}, nil
	}

	matches := subtle.ConstantTimeCompare([]byte(u.VerifyCode), []byte(code)) == 1
	expired := u.CodeExpired(s.now())
	switch {
	case expired:
		return nil, ErrCodeExpired
	case !matches:
		return nil, ErrCodeMismatch
	}

	if err := s.Users.MarkVerified(ctx, u.ID); err != nil {
		return nil, apperror.Upstream(err)
	}
	return &VerifyResult{Username: u.Username, IsVerified: true}, nil
}

// CheckUsername returns ErrUsernameTaken when a verified account holds username.
func (s *AccountService) CheckUsername(ctx context.Context, username string) error {
	_, err := s.Users.GetVerifiedByUsername(ctx, strings.TrimSpace(username))
	switch {
	case err == nil:
		return ErrUsernameTaken
	case errors.Is(err, repo.ErrNotFound):
		return nil
	default:
		return apperror.Upstream(err)
	}
}

type PublicProfile struct {
	ID                  string
	Username            string
	IsAcceptingMessages bool
}

// PublicProfile is what an anonymous sender may learn about a recipient.
func (s *AccountService) PublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	u, err := s.Users.GetVerifiedByUsername(ctx, strings.TrimSpace(username))
	return publicProfileOf(u, err)
}

// PublicProfileByID resolves the same projection from a user id. Unverified accounts are not found.
func (s *AccountService) PublicProfileByID(ctx context.Context, id string) (*PublicProfile, error) {
	u, err := s.Users.GetByID(ctx, strings.TrimSpace(id))
	if err == nil && !u.IsVerified {
		return nil, ErrUserNotFound
	}
	return publicProfileOf(u, err)
}

func publicProfileOf(u *entity.User, err error) (*PublicProfile, error) {
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperror.Upstream(err)
	}
	return &PublicProfile{ID: u.ID, Username: u.Username, IsAcceptingMessages: u.IsAcceptingMessages}, nil
}
