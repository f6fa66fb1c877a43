package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const VerifyCodeLength = 6

var verifyCodeSpace = big.NewInt(1_000_000)

// GenOTPCode generates a uniformly distributed 6-digit code as a zero-padded string.
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, verifyCodeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
