package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var alice = SessionUser{
	UserID:              "7b0c8a52-7d84-4f43-a1f6-9d1f0ab5c8e1",
	Username:            "alice",
	Email:               "alice@example.com",
	IsVerified:          true,
	IsAcceptingMessages: true,
}

func TestJWTManager_IssueAndParse(t *testing.T) {
	req := require.New(t)
	m := NewJWTManager("test-secret", time.Hour, "anon-inbox")

	token, issued, err := m.Issue(alice)
	req.NoError(err)
	req.NotEmpty(token)
	req.NotEmpty(issued.RegisteredClaims.ID)

	claims, err := m.Parse(token)
	req.NoError(err)
	req.Equal(SessionSchemaVersion, claims.Version)
	req.Equal(alice, claims.SessionUser)
	req.Equal(issued.RegisteredClaims.ID, claims.RegisteredClaims.ID)
	req.Equal(alice.UserID, claims.Subject)
}

func TestJWTManager_ParseRejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, "anon-inbox")

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour, "anon-inbox")
		token, _, err := other.Issue(alice)
		require.NoError(t, err)

		_, err = m.Parse(token)
		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		past := NewJWTManager("test-secret", time.Hour, "anon-inbox")
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := past.Issue(alice)
		require.NoError(t, err)

		_, err = m.Parse(token)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("should reject an unknown schema version", func(t *testing.T) {
		claims := &SessionClaims{
			Version:     SessionSchemaVersion + 1,
			SessionUser: alice,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti-1",
				Issuer:    "anon-inbox",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
		require.NoError(t, err)

		_, err = m.Parse(token)
		require.ErrorIs(t, err, ErrUnsupportedSessionVersion)
	})

	t.Run("should reject claims without identity", func(t *testing.T) {
		claims := &SessionClaims{
			Version:     SessionSchemaVersion,
			SessionUser: SessionUser{Username: "alice"},
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti-2",
				Issuer:    "anon-inbox",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
		require.NoError(t, err)

		_, err = m.Parse(token)
		require.ErrorIs(t, err, ErrIncompleteSessionClaims)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		require.Error(t, err)
	})
}
