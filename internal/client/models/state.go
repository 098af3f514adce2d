package models

// AuthState is the state of the authentication state machine.
type AuthState int

const (
	AuthInitializing AuthState = iota
	AuthUnauthenticated
	AuthRegistering
	AuthPendingVerification
	AuthAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case AuthInitializing:
		return "initializing"
	case AuthUnauthenticated:
		return "unauthenticated"
	case AuthRegistering:
		return "registering"
	case AuthPendingVerification:
		return "pending_verification"
	case AuthAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
