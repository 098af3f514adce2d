package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "Passwords do not match",
		NewValidationError("Passwords do not match", map[string]string{"password_confirmation": "Passwords do not match"}).Error())

	assert.Equal(t, "email must be a valid email; name is required",
		NewValidationError("", map[string]string{"name": "is required", "email": "must be a valid email"}).Error())

	assert.Equal(t, ErrValidation.Error(), NewValidationError("", nil).Error())
}

func TestErrorTaxonomy_IsMatching(t *testing.T) {
	ve := NewValidationError("bad", nil)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", ve), ErrValidation)
	assert.NotErrorIs(t, ve, ErrUnavailable)

	te := &TransportError{Err: errors.New("connection refused")}
	assert.ErrorIs(t, te, ErrUnavailable)
	assert.NotErrorIs(t, te, ErrValidation)

	assert.ErrorIs(t, &ServerError{Status: http.StatusUnauthorized}, ErrUnauthorized)
	assert.ErrorIs(t, &ServerError{Status: http.StatusBadRequest, Code: CodeEmailNotVerified}, ErrUnverified)
	assert.NotErrorIs(t, &ServerError{Status: http.StatusForbidden, Code: "banned"}, ErrUnverified)
	assert.ErrorIs(t, &ServerError{Status: http.StatusBadRequest, Code: CodeInvalidOTP}, ErrInvalidCode)
	assert.ErrorIs(t, &ServerError{Status: http.StatusTooManyRequests}, ErrRateLimited)
}

func TestServerError_DefaultMessage(t *testing.T) {
	assert.Equal(t, "gateway returned 500 Internal Server Error", (&ServerError{Status: 500}).Error())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, connectivityMessage, UserMessage(&TransportError{Err: errors.New("dial tcp")}))
	assert.Equal(t, "Passwords do not match", UserMessage(NewValidationError("Passwords do not match", nil)))
	assert.Equal(t, "Invalid credentials", UserMessage(fmt.Errorf("login: %w", &ServerError{Status: 401, Message: "Invalid credentials"})))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
