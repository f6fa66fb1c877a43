package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenOTPCode(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		require.Len(t, code, VerifyCodeLength)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "unexpected rune %q in %s", r, code)
		}
		seen[code] = struct{}{}
	}
	require.Greater(t, len(seen), 150)
}
