// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidToken = errors.New("invalid farmer token")
	ErrMissingToken = errors.New("missing farmer token")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateFarmerToken creates a random bearer token for a farmer account.
// The token is returned to the client exactly once at registration.
func GenerateFarmerToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate farmer token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashToken produces the salted HMAC digest under which a token is stored.
// Lookups recompute the digest; the raw token never touches the database.
func HashToken(token, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyToken checks a presented token against a stored hash in constant time.
func VerifyToken(token, storedHash, salt string) error {
	if token == "" {
		return ErrMissingToken
	}
	expected := HashToken(token, salt)
	if !hmac.Equal([]byte(storedHash), []byte(expected)) {
		return ErrInvalidToken
	}
	return nil
}
