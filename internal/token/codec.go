// Package token decodes the expiry embedded in a bearer token without
// contacting the server and without verifying the signature; the client never
// holds the signing key and only needs to know whether the token is already
// dead.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser()

// ExpiresAt extracts the expiry instant from the token payload.
func ExpiresAt(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return exp.Time, nil
}

// IsLocallyValid reports whether the token decodes and its expiry is in the
// future. Any decode failure counts as invalid.
func IsLocallyValid(raw string) bool {
	exp, err := ExpiresAt(raw)
	if err != nil {
		return false
	}
	return exp.After(time.Now())
}

// TimeRemaining returns how long the token has left, zero if it is expired
// or undecodable.
func TimeRemaining(raw string) time.Duration {
	exp, err := ExpiresAt(raw)
	if err != nil {
		return 0
	}
	remaining := time.Until(exp)
	if remaining < 0 {
		return 0
	}
	return remaining
}
