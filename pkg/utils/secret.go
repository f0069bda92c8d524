package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomSecret returns 32 random bytes in hex encoding.
func RandomSecret() string {
	buf := make([]byte, 32)
	//nolint:errcheck // rand.Read never fails
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
