// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. The Gateway interface: the remote auth API (register, login, logout,
//     OTP verification and resend, password reset).
//  2. HTTPGateway, the REST/JSON implementation. A round-tripper adds an
//     X-Request-ID to every call and the bearer token where one applies.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are typed so callers can tell them apart:
//   - *ValidationError: field-level problems (errors.Is(err, ErrValidation)).
//   - *TransportError: no response received (errors.Is(err, ErrUnavailable)).
//   - *ServerError: any other gateway failure; matches ErrUnauthorized,
//     ErrUnverified, ErrInvalidCode or ErrRateLimited where applicable.
//
// UserMessage renders any of them for display.
package client
