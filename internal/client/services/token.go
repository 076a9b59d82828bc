package services

import (
	"time"

	"github.com/dmitrijs2005/gophvote/internal/api"
	"github.com/golang-jwt/jwt/v5"
)

// inspectToken decodes the claims of a JWT bearer token without checking
// the signature. ok is false for tokens that are not JWTs.
func inspectToken(raw string) (claims *api.Claims, ok bool) {
	claims = &api.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// expired reports whether claims carry an expiry at or before now.
func expired(claims *api.Claims, now time.Time) bool {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
