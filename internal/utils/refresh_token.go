package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// GenerateRefreshToken produces a new opaque refresh token (base64 of 32
// random bytes).
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashRefreshToken returns the HMAC-SHA256 of the token under the given
// secret. Only the hash is persisted.
func HashRefreshToken(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyRefreshToken checks a presented token against the persisted hash in
// constant time.
func VerifyRefreshToken(token, secret, storedHash string) bool {
	expected := HashRefreshToken(token, secret)
	return hmac.Equal([]byte(expected), []byte(storedHash))
}
