// Package models defines the client-side data models of the SkillClip CLI:
// the authenticated session, a pending e-mail verification and the
// onboarding questionnaire answers.
package models

// User is the account record returned by the gateway and persisted with the
// session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// HasCompletedOnboarding is the account-level flag reported by the
	// gateway. Accounts that predate it decode as false.
	HasCompletedOnboarding bool `json:"has_completed_onboarding"`
}
