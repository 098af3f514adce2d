package models

import "time"

// Session is the authenticated identity known to the client.
//
// A session is usable only when it carries both a token and a user record
// with an ID and an e-mail; anything else counts as unauthenticated.
type Session struct {
	User                   User   `json:"user"`
	AuthToken              string `json:"-"`
	IsNewUser              bool   `json:"is_new_user"`
	HasCompletedOnboarding bool   `json:"has_completed_onboarding"`
}

// Valid reports whether s is a well-formed session.
func (s *Session) Valid() bool {
	return s != nil && s.AuthToken != "" && s.User.ID != "" && s.User.Email != ""
}

// Clone returns a copy of s, or nil for a nil session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// PendingVerification is the state between a successful registration and a
// successful OTP verification.
type PendingVerification struct {
	Email                string
	OTPResendAvailableAt time.Time
	// EnteredCode is the last code submitted for verification; it is wiped
	// when the gateway rejects it.
	EnteredCode string
}

// Clone returns a copy of p, or nil for nil.
func (p *PendingVerification) Clone() *PendingVerification {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
