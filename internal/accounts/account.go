package accounts

import (
	"errors"
	"fmt"
	"strings"

	"quackey/internal/otp"
)

var (
	ErrValidation     = errors.New("invalid account")
	ErrDuplicateName  = errors.New("account name already exists")
	ErrNotFound       = errors.New("account not found")
	ErrPersistence    = errors.New("failed to persist accounts")
	ErrCorruptStorage = errors.New("accounts file is corrupt")
)

// Account is a single stored TOTP credential. Secret holds the base32
// text exactly as entered so the accounts file stays portable and
// auditable; it is decoded on demand and never logged.
type Account struct {
	Name      string        `json:"name"`
	Issuer    string        `json:"issuer,omitempty"`
	Secret    string        `json:"secret"`
	Digits    int           `json:"digits"`
	Period    int           `json:"period"`
	Algorithm otp.Algorithm `json:"algorithm"`
}

// Validate checks every data model invariant. Out-of-set values are
// rejected, never coerced.
func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if _, err := otp.DecodeSecret(a.Secret); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := otp.ValidateParams(a.Digits, a.Period, a.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// Key returns the shared secret as raw bytes for the OTP engine.
func (a Account) Key() ([]byte, error) {
	return otp.DecodeSecret(a.Secret)
}

// Label is the display form used in selection menus.
func (a Account) Label() string {
	if a.Issuer != "" {
		return fmt.Sprintf("%s (%s)", a.Name, a.Issuer)
	}
	return a.Name
}

// Patch carries optional replacement values for Store.Edit. Nil fields
// keep the stored value.
type Patch struct {
	Name      *string
	Issuer    *string
	Secret    *string
	Digits    *int
	Period    *int
	Algorithm *otp.Algorithm
}

func (p Patch) apply(a Account) Account {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Issuer != nil {
		a.Issuer = *p.Issuer
	}
	if p.Secret != nil {
		a.Secret = *p.Secret
	}
	if p.Digits != nil {
		a.Digits = *p.Digits
	}
	if p.Period != nil {
		a.Period = *p.Period
	}
	if p.Algorithm != nil {
		a.Algorithm = *p.Algorithm
	}
	return a
}
