// Package cli provides the interactive SkillClip command-line client.
//
// It wires configuration, the local session database, the REST auth gateway
// and an interactive REPL. On start the persisted session is restored and the
// dashboard is opened; the route guard then decides whether the user has to
// sign in or finish onboarding first.
//
// Key features:
//   - Register, verify the e-mailed code, resend it
//   - Login / Logout, password reset
//   - Onboarding questionnaire for learners and creators
//   - open <path> to navigate through the route guard
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and App.Open for details.
package cli
