package services

import (
	"time"

	"github.com/dmitrijs2005/skillclip/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// checkToken decides whether a persisted bearer token is still worth
// restoring. The signature is not verified: the client cannot do that and
// only wants to skip sessions the gateway will reject anyway. Opaque tokens
// and JWTs without exp pass.
func checkToken(token string, now time.Time) error {
	if token == "" {
		return common.ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if !exp.After(now) {
		return common.ErrTokenExpired
	}
	return nil
}
