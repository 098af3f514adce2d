// Package common contains shared constants and helpers used across
// SkillClip client components.
package common

// AuthorizationHeaderName carries the bearer token on outbound gateway requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// Keys of the local metadata table that make up a persisted session.
const (
	SessionUserKey  = "user"
	SessionTokenKey = "auth_token"
)

// OnboardedKeyPrefix prefixes the per-account onboarding marker.
const OnboardedKeyPrefix = "onboarded:"
