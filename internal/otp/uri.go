package otp

import (
	"net/url"
	"strconv"
)

// KeyURI builds an otpauth:// provisioning URI in the Key Uri Format
// understood by authenticator apps. The secret is embedded, so the
// result must never be written to logs.
func KeyURI(issuer, account, secret string, digits, period int, alg Algorithm) string {
	label := url.PathEscape(account)
	q := url.Values{}
	q.Set("secret", secret)
	if issuer != "" {
		label = url.PathEscape(issuer) + ":" + label
		q.Set("issuer", issuer)
	}
	q.Set("algorithm", string(alg))
	q.Set("digits", strconv.Itoa(digits))
	q.Set("period", strconv.Itoa(period))
	return "otpauth://totp/" + label + "?" + q.Encode()
}
