package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Decode extracts the claims of a bearer token without verifying its
// signature. Signature verification is the backend's job; the client only
// needs the claim payload.
func Decode(raw string) (jwt.MapClaims, error) {
	if strings.Count(raw, ".") != 2 {
		return nil, fmt.Errorf("%w: expected three segments", ErrInvalidToken)
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// ExpiresAt returns the expiry carried by the token, if it decodes and has
// one.
func ExpiresAt(raw string) (time.Time, bool) {
	claims, err := Decode(raw)
	if err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsExpired treats any token it cannot decode, or that carries no expiry,
// as expired.
func IsExpired(raw string) bool {
	exp, ok := ExpiresAt(raw)
	if !ok {
		return true
	}
	return exp.Unix() < time.Now().Unix()
}
