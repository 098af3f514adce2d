package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrBusy rejects an operation submitted while another one is in flight.
	ErrBusy = errors.New("another operation is in progress")
	// ErrInvalidState rejects an operation the current auth state does not allow.
	ErrInvalidState = errors.New("operation not allowed in the current state")
	// ErrNotAuthenticated is returned by operations that need a session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrResendCooldown matches every CooldownError.
	ErrResendCooldown = errors.New("code resend is cooling down")
)

// CooldownError rejects an OTP resend inside the cooldown window.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	secs := int((e.Remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("please wait %ds before requesting a new code", secs)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrResendCooldown
}
