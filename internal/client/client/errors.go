package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnverified   = errors.New("email not verified")
	ErrInvalidCode  = errors.New("invalid or expired code")
	ErrRateLimited  = errors.New("too many requests")
	ErrValidation   = errors.New("validation failed")
)

// Gateway error codes carried in the response envelope.
const (
	CodeEmailNotVerified = "email_not_verified"
	CodeInvalidOTP       = "invalid_otp"
)

// ValidationError reports field-level problems, found either locally before
// any request is made or by the gateway (HTTP 422).
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError builds a ValidationError; the message defaults to a
// summary of the fields.
func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransportError means no response was received from the gateway.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", ErrUnavailable, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == ErrUnavailable
}

// ServerError is a non-validation failure reported by the gateway.
type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gateway returned %d %s", e.Status, http.StatusText(e.Status))
}

func (e *ServerError) Is(target error) bool {
	switch target {
	case ErrUnverified:
		return e.Code == CodeEmailNotVerified || (e.Status == http.StatusForbidden && e.Code == "")
	case ErrInvalidCode:
		return e.Code == CodeInvalidOTP
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	}
	return false
}

// connectivityMessage is shown instead of raw transport errors.
const connectivityMessage = "Unable to reach the server. Check your connection and try again."

// UserMessage renders err for display: validation and gateway messages are
// shown verbatim, transport errors as a generic connectivity notice.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnavailable) {
		return connectivityMessage
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}
