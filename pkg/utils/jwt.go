package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token carries no exp claim
var ErrNoExpiry = errors.New("token has no expiry")

var unverified = jwt.NewParser(jwt.WithoutClaimsValidation())

// TokenClaims are the registered claims the dashboard reads from backend tokens.
// Signatures are verified by the backend, never here.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// InspectToken decodes a token's registered claims without verifying it
func InspectToken(token string) (*TokenClaims, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := unverified.ParseUnverified(token, &claims); err != nil {
		return nil, err
	}

	tc := &TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		tc.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		tc.IssuedAt = claims.IssuedAt.Time
	}
	return tc, nil
}

// TokenExpiry returns the exp claim of a token
func TokenExpiry(token string) (time.Time, error) {
	claims, err := InspectToken(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt.IsZero() {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt, nil
}

// IsTokenExpired reports whether a token expires within skew of now.
// Tokens that cannot be decoded or carry no expiry are treated as live;
// the backend has the final say.
func IsTokenExpired(token string, now time.Time, skew time.Duration) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return false
	}
	return !now.Add(skew).Before(exp)
}
