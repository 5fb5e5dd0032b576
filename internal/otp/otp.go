package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"math"
	"time"
)

// Algorithm selects the HMAC digest used to derive codes.
type Algorithm string

const (
	AlgorithmSHA1   Algorithm = "SHA1"
	AlgorithmSHA256 Algorithm = "SHA256"
	AlgorithmSHA512 Algorithm = "SHA512"
)

// Algorithms lists the supported digests in menu order.
var Algorithms = []Algorithm{AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA512}

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")
	ErrInvalidDigits        = errors.New("invalid digit count")
	ErrInvalidPeriod        = errors.New("invalid period")
)

// Digit counts and periods the account model accepts. RFC 6238 allows
// other values, but the menu only ever offers these.
var (
	AllowedDigits  = []int{6, 7, 8}
	AllowedPeriods = []int{30, 60, 90}
)

func (a Algorithm) hasher() (func() hash.Hash, error) {
	switch a {
	case AlgorithmSHA1:
		return sha1.New, nil
	case AlgorithmSHA256:
		return sha256.New, nil
	case AlgorithmSHA512:
		return sha512.New, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
}

// ValidateParams checks account-level TOTP parameters against the sets
// the application supports.
func ValidateParams(digits, period int, alg Algorithm) error {
	if !contains(AllowedDigits, digits) {
		return fmt.Errorf("%w: %d (want 6, 7 or 8)", ErrInvalidDigits, digits)
	}
	if !contains(AllowedPeriods, period) {
		return fmt.Errorf("%w: %d (want 30, 60 or 90)", ErrInvalidPeriod, period)
	}
	if _, err := alg.hasher(); err != nil {
		return err
	}
	return nil
}

func contains(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// HOTP derives an RFC 4226 code for a single counter value.
func HOTP(secret []byte, counter uint64, digits int, alg Algorithm) (string, error) {
	if digits < 6 || digits > 8 {
		return "", fmt.Errorf("%w: %d", ErrInvalidDigits, digits)
	}
	newHash, err := alg.hasher()
	if err != nil {
		return "", err
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, counter)
	mac := hmac.New(newHash, secret)
	mac.Write(buf)
	sum := mac.Sum(nil)

	// Dynamic truncation: the low nibble of the last byte picks a
	// 4-byte window, with bit 31 cleared to avoid sign ambiguity.
	off := sum[len(sum)-1] & 0x0f
	code := uint32(sum[off]&0x7f)<<24 |
		uint32(sum[off+1])<<16 |
		uint32(sum[off+2])<<8 |
		uint32(sum[off+3])

	code %= uint32(math.Pow10(digits))
	return fmt.Sprintf("%0*d", digits, code), nil
}

// Generate derives the RFC 6238 code for the time step containing at
// and reports how many seconds of that step remain. The caller supplies
// the clock so outputs are reproducible.
func Generate(secret []byte, digits, period int, alg Algorithm, at time.Time) (string, int, error) {
	if period <= 0 {
		return "", 0, fmt.Errorf("%w: %d", ErrInvalidPeriod, period)
	}
	unix := at.Unix()
	code, err := HOTP(secret, uint64(unix/int64(period)), digits, alg)
	if err != nil {
		return "", 0, err
	}
	remaining := period - int(unix%int64(period))
	return code, remaining, nil
}
