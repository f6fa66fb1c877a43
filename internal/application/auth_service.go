package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/anon-inbox/internal/domain/entity"
	repo "github.com/oksasatya/anon-inbox/internal/domain/repository"
	"github.com/oksasatya/anon-inbox/pkg/apperror"
	"github.com/oksasatya/anon-inbox/pkg/helpers"
)

type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger

	comparePassword func(hash, plain string) bool
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Logger: logger, comparePassword: helpers.CompareHashAndPassword}
}

// Session is a freshly minted session token and the claims it carries.
type Session struct {
	Token     string
	Claims    *helpers.SessionClaims
	ExpiresAt time.Time
}

// VerifyCredentials checks email and password of a verified account.
// Every failure is ErrInvalidCredentials; the concrete reason is its cause.
// Each outcome pays for exactly one bcrypt comparison.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (entity.Identity, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.compare(helpers.DummyPasswordHash(), password)
			return entity.Identity{}, s.reject(ReasonUnknownEmail)
		}
		return entity.Identity{}, apperror.Upstream(err)
	}
	if !u.IsVerified {
		s.compare(helpers.DummyPasswordHash(), password)
		return entity.Identity{}, s.reject(ReasonNotVerified)
	}
	if !s.compare(u.Password, password) {
		return entity.Identity{}, s.reject(ReasonWrongPassword)
	}
	return u.Identity(), nil
}

func (s *AuthService) compare(hash, plain string) bool {
	if s.comparePassword == nil {
		return helpers.CompareHashAndPassword(hash, plain)
	}
	return s.comparePassword(hash, plain)
}

func (s *AuthService) reject(reason error) error {
	countAuthFailure(reason)
	return ErrInvalidCredentials.WithCause(reason)
}

// SignIn verifies credentials and mints a session. Nothing is written.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	id, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.Issue(id)
}

// Issue mints a session token for id.
func (s *AuthService) Issue(id entity.Identity) (*Session, error) {
	token, claims, err := s.JWT.Issue(SessionUserOf(id))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id.ID).Error("issue session token failed")
		}
		return nil, apperror.Upstream(err)
	}
	return &Session{Token: token, Claims: claims, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Authenticate parses a session token. Revoked tokens are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*helpers.SessionClaims, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, ErrNotAuthenticated.WithCause(err)
	}
	if s.revoked(ctx, claims.RegisteredClaims.ID) {
		return nil, ErrNotAuthenticated
	}
	return claims, nil
}

// SignOut revokes the session id until the token expires. Without Redis it is a no-op.
func (s *AuthService) SignOut(ctx context.Context, claims *helpers.SessionClaims) error {
	if s.Redis == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := helpers.RevokeSession(ctx, s.Redis, claims.RegisteredClaims.ID, claims.ExpiresAt.Time); err != nil {
		return apperror.Upstream(err)
	}
	return nil
}

func (s *AuthService) revoked(ctx context.Context, jti string) bool {
	if s.Redis == nil {
		return false
	}
	revoked, err := helpers.IsSessionRevoked(ctx, s.Redis, jti)
	if err != nil {
		// fail open
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("session revocation check failed")
		}
		return false
	}
	return revoked
}

func SessionUserOf(id entity.Identity) helpers.SessionUser {
	return helpers.SessionUser{
		UserID:              id.ID,
		Username:            id.Username,
		Email:               id.Email,
		IsVerified:          id.IsVerified,
		IsAcceptingMessages: id.IsAcceptingMessages,
	}
}

func IdentityOf(c *helpers.SessionClaims) entity.Identity {
	return entity.Identity{
		ID:                  c.UserID,
		Username:            c.Username,
		Email:               c.Email,
		IsVerified:          c.IsVerified,
		IsAcceptingMessages: c.IsAcceptingMessages,
	}
}
