package client

import (
	"context"

	"github.com/dmitrijs2005/skillclip/internal/client/models"
)

// RegisterRequest is the sign-up form sent to the gateway.
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,pwd"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// ResetPasswordRequest completes a password reset started by e-mail.
type ResetPasswordRequest struct {
	Token                string `json:"token" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,pwd"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// AuthResult is returned by login and OTP verification. Verification may
// succeed without issuing a token, in which case Token is empty and User nil.
type AuthResult struct {
	Message string
	Token   string
	User    *models.User
}

// Gateway is the remote auth API consumed by the auth service.
//
// Implementations map failures onto the error taxonomy of this package:
// *TransportError, *ValidationError and *ServerError.
type Gateway interface {
	Register(ctx context.Context, req RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (string, error)
}
