package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionSchemaVersion tags the claims layout. Tokens carrying any other version are rejected.
const SessionSchemaVersion = 1

var (
	ErrUnsupportedSessionVersion = errors.New("unsupported session schema version")
	ErrIncompleteSessionClaims   = errors.New("session claims missing identity fields")
)

// SessionUser is the identity embedded in a session token.
type SessionUser struct {
	UserID              string `json:"uid"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	IsVerified          bool   `json:"is_verified"`
	IsAcceptingMessages bool   `json:"is_accepting_messages"`
}

// SessionClaims is shared by the issuer and every consumer of the session cookie.
type SessionClaims struct {
	Version int `json:"ver"`
	SessionUser
	jwt.RegisteredClaims
}

// Validate is invoked by the jwt parser after the registered claims checks.
func (c *SessionClaims) Validate() error {
	if c.Version != SessionSchemaVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedSessionVersion, c.Version)
	}
	if c.UserID == "" || c.Username == "" || c.Email == "" || c.RegisteredClaims.ID == "" {
		return ErrIncompleteSessionClaims
	}
	return nil
}

// JWTManager handles generation and validation of session tokens.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
	Issuer string

	now func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration, issuer string) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl, Issuer: issuer, now: time.Now}
}

func (m *JWTManager) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

// Issue signs a new session token for u.
func (m *JWTManager) Issue(u SessionUser) (string, *SessionClaims, error) {
	now := m.clock()
	claims := &SessionClaims{
		Version:     SessionSchemaVersion,
		SessionUser: u,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.Issuer,
			Subject:   u.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	if err != nil {
		return "", nil, err
	}
	return s, claims, nil
}

// Parse verifies signature, expiry, issuer and schema of tokenStr.
func (m *JWTManager) Parse(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock),
	}
	if m.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.Issuer))
	}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
