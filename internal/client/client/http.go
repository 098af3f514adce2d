package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/skillclip/internal/client/models"
)

// Gateway endpoints, relative to the base URL.
const (
	pathRegister       = "/auth/register"
	pathLogin          = "/auth/login"
	pathLogout         = "/auth/logout"
	pathVerifyOTP      = "/auth/verify-otp"
	pathResendOTP      = "/auth/resend-otp"
	pathForgotPassword = "/auth/forgot-password"
	pathResetPassword  = "/auth/reset-password"
)

// maxResponseBody caps how much of a response body is decoded.
const maxResponseBody = 1 << 20

// HTTPGateway implements Gateway over the REST/JSON auth API.
type HTTPGateway struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewHTTPGateway builds a gateway client for baseURL. A zero timeout
// disables the per-request deadline. base may be nil to use
// http.DefaultTransport.
func NewHTTPGateway(baseURL string, timeout time.Duration, base http.RoundTripper) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{Transport: newHeaderTransport(base)},
	}
}

// envelope is the common response body of the gateway.
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    string       `json:"code"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Errors  fieldErrors  `json:"errors"`
}

// fieldErrors accepts both {"email": "taken"} and {"email": ["taken", ...]};
// only the first message per field is kept.
type fieldErrors map[string]string

func (f *fieldErrors) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(fieldErrors, len(raw))
	for field, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			out[field] = single
			continue
		}
		var many []string
		if err := json.Unmarshal(value, &many); err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		if len(many) > 0 {
			out[field] = many[0]
		}
	}
	*f = out
	return nil
}

func (g *HTTPGateway) Register(ctx context.Context, req RegisterRequest) (string, error) {
	env, err := g.post(ctx, pathRegister, req)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (g *HTTPGateway) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := g.post(ctx, pathLogin, body)
	if err != nil {
		return nil, err
	}
	if env.Token == "" || env.User == nil {
		return nil, &ServerError{Status: http.StatusOK, Message: "login response carries no session"}
	}
	return &AuthResult{Message: env.Message, Token: env.Token, User: env.User}, nil
}

func (g *HTTPGateway) Logout(ctx context.Context, token string) error {
	_, err := g.post(withAccessToken(ctx, token), pathLogout, struct{}{})
	return err
}

func (g *HTTPGateway) VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	body := map[string]string{"email": email, "code": code}
	env, err := g.post(ctx, pathVerifyOTP, body)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Message: env.Message, Token: env.Token, User: env.User}, nil
}

func (g *HTTPGateway) ResendOTP(ctx context.Context, email string) (string, error) {
	env, err := g.post(ctx, pathResendOTP, map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (g *HTTPGateway) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	env, err := g.post(ctx, pathForgotPassword, map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (g *HTTPGateway) ResetPassword(ctx context.Context, req ResetPasswordRequest) (string, error) {
	env, err := g.post(ctx, pathResetPassword, req)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// post sends body as JSON and decodes the envelope, mapping failures onto
// TransportError, ValidationError and ServerError.
func (g *HTTPGateway) post(ctx context.Context, path string, body any) (*envelope, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) == 0 {
		env.Success = resp.StatusCode < http.StatusBadRequest
	} else {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, &ServerError{Status: resp.StatusCode, Message: fmt.Sprintf("unexpected response from %s", path)}
		}
	}

	return &env, mapResponse(resp.StatusCode, &env)
}

func mapResponse(status int, env *envelope) error {
	if status == http.StatusUnprocessableEntity || (len(env.Errors) > 0 && status >= http.StatusBadRequest) {
		return NewValidationError(env.Message, env.Errors)
	}
	if status >= http.StatusBadRequest {
		return &ServerError{Status: status, Code: env.Code, Message: env.Message}
	}
	if !env.Success {
		return &ServerError{Status: status, Code: env.Code, Message: env.Message}
	}
	return nil
}

var _ Gateway = (*HTTPGateway)(nil)
