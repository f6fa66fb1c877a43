package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func keyRevokedSession(jti string) string { return "session:revoked:" + jti }

// RevokeSession marks a session id as signed out until its token would have expired anyway.
func RevokeSession(ctx context.Context, rdb *redis.Client, jti string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, keyRevokedSession(jti), "1", ttl).Err()
}

// IsSessionRevoked reports whether jti was signed out.
func IsSessionRevoked(ctx context.Context, rdb *redis.Client, jti string) (bool, error) {
	n, err := rdb.Exists(ctx, keyRevokedSession(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
