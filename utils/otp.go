package utils

import (
	"crypto/rand"
	"math/big"
)

var otpRange = big.NewInt(10)

// GenerateOTP returns a numeric one-time password of the given length.
// Each digit is drawn uniformly.
func GenerateOTP(length int) (string, error) {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, otpRange)
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
