// Package common defines shared constants and sentinel errors used across
// the client layers of SkillClip. Callers should use errors.Is to match
// these values.
package common

import "errors"

// Token inspection errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
