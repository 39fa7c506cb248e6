package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP(6)
		assert.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[otp] = true
	}
	// 50 draws from a million values should not all collide.
	assert.Greater(t, len(seen), 1)
}
