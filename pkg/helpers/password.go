package helpers

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password in constant time.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// DummyPasswordHash is a DefaultCost hash no password matches. Comparing against it
// costs the same as comparing against a stored hash.
func DummyPasswordHash() string {
	dummyHashOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte("\x00unmatchable-dummy-password"), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		dummyHash = b
	})
	return string(dummyHash)
}
