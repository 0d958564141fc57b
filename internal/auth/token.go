package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRefreshToken returns a random opaque token for the refresh flow.
func GenerateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
