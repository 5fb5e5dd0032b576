package otp

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSecret = errors.New("secret is not valid base32")

// b32 decodes without padding; input padding is stripped first so both
// padded and unpadded keys are accepted.
var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// NormalizeSecret returns the canonical text form of a shared secret:
// uppercase base32 without spaces or padding. Setup keys are often
// displayed in lowercase groups of four, so both are tolerated.
func NormalizeSecret(text string) (string, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), " ", ""))
	cleaned = strings.TrimRight(cleaned, "=")
	if cleaned == "" {
		return "", fmt.Errorf("%w: secret is empty", ErrInvalidSecret)
	}
	if _, err := b32.DecodeString(cleaned); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return cleaned, nil
}

// DecodeSecret converts a user-supplied shared secret into the raw key
// bytes the engine consumes.
func DecodeSecret(text string) ([]byte, error) {
	cleaned, err := NormalizeSecret(text)
	if err != nil {
		return nil, err
	}
	key, err := b32.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: decodes to zero bytes", ErrInvalidSecret)
	}
	return key, nil
}

// GenerateSecret returns a fresh random 160-bit secret in base32 text
// form, per the RFC 4226 key size recommendation.
func GenerateSecret() (string, error) {
	key := make([]byte, 20)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return b32.EncodeToString(key), nil
}
