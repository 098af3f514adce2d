// Package services contains the application services of the SkillClip client.
// This file defines the authentication state machine: registration, OTP
// verification and resend, login, logout, password reset, and the session
// bootstrap performed at startup.
package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/skillclip/internal/client/client"
	"github.com/dmitrijs2005/skillclip/internal/client/models"
	"github.com/dmitrijs2005/skillclip/internal/common"
	"github.com/dmitrijs2005/skillclip/internal/logging"
	"github.com/dmitrijs2005/skillclip/internal/validation"
)

// DefaultResendCooldown is the wait between two OTP deliveries to one address.
const DefaultResendCooldown = 60 * time.Second

const msgPasswordMismatch = "Passwords do not match"

// AuthService drives the client through its authentication states.
//
// Contract:
//   - Initialize: restore a persisted session once per process.
//   - Register, VerifyOTP, ResendOTP: sign-up with e-mail confirmation.
//   - Login, Logout: start and end a session.
//   - RequestPasswordReset, ResetPassword: one-shot calls, state untouched.
//   - CompleteOnboarding: mark the current session as onboarded.
//
// Only one mutating operation runs at a time; a concurrent call fails with
// ErrBusy. Every returned error is also available from Err until the next
// successful operation.
type AuthService interface {
	Initialize(ctx context.Context) models.AuthState
	Register(ctx context.Context, in RegisterInput) (RegisterResult, error)
	VerifyOTP(ctx context.Context, email, code string) (*models.Session, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, in ResetPasswordInput) (string, error)
	CompleteOnboarding(ctx context.Context) error

	State() models.AuthState
	Session() *models.Session
	Pending() *models.PendingVerification
	Loading() bool
	Err() error
	IsAuthenticated() bool
}

// SessionStore persists the session between runs. Load returns nil when
// nothing usable is stored.
//
// Onboarding completion is recorded per account and outlives Clear, so a
// returning user is not sent through the questionnaire again.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Load(ctx context.Context) *models.Session
	Clear(ctx context.Context) error
	MarkOnboarded(ctx context.Context, userID string) error
	Onboarded(ctx context.Context, userID string) bool
}

// Resetter is notified on logout; the onboarding wizard implements it.
type Resetter interface {
	Reset()
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// RegisterResult reports an accepted registration. Email is the address the
// verification code was sent to.
type RegisterResult struct {
	Success bool
	Email   string
	Message string
}

// ResetPasswordInput is the form that completes a password reset.
type ResetPasswordInput struct {
	Token                string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Option configures an AuthService.
type Option func(*authService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *authService) { s.now = now }
}

// WithResendCooldown sets the OTP resend cooldown. Non-positive values keep
// the default.
func WithResendCooldown(d time.Duration) Option {
	return func(s *authService) {
		if d > 0 {
			s.cooldown = d
		}
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(s *authService) { s.log = l }
}

// WithOnboarding registers the onboarding state to reset on logout.
func WithOnboarding(r Resetter) Option {
	return func(s *authService) { s.onboarding = r }
}

type authService struct {
	gateway    client.Gateway
	store      SessionStore
	log        logging.Logger
	now        func() time.Time
	cooldown   time.Duration
	onboarding Resetter

	initOnce sync.Once
	loading  atomic.Bool

	mu       sync.RWMutex
	state    models.AuthState
	session  *models.Session
	pending  *models.PendingVerification
	resendAt map[string]time.Time
	err      error
}

// NewAuthService constructs an AuthService bound to the gateway and the
// session store. The service starts in AuthInitializing.
func NewAuthService(gateway client.Gateway, store SessionStore, opts ...Option) AuthService {
	s := &authService{
		gateway:  gateway,
		store:    store,
		log:      logging.Nop(),
		now:      time.Now,
		cooldown: DefaultResendCooldown,
		state:    models.AuthInitializing,
		resendAt: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize restores the persisted session. It runs once; later calls only
// return the current state. Every operation that reads or replaces the
// session calls it first.
func (s *authService) Initialize(ctx context.Context) models.AuthState {
	s.initOnce.Do(func() {
		restored := s.store.Load(ctx)
		if restored != nil {
			if err := checkToken(restored.AuthToken, s.now()); err != nil {
				s.log.Info(ctx, "discarding persisted session", "user_id", restored.User.ID, "reason", err)
				if err := s.store.Clear(ctx); err != nil {
					s.log.Warn(ctx, "clear persisted session", "error", err)
				}
				restored = nil
			}
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if restored.Valid() {
			s.session = restored
			s.setState(ctx, models.AuthAuthenticated)
			return
		}
		s.setState(ctx, models.AuthUnauthenticated)
	})
	return s.State()
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	s.Initialize(ctx)
	if err := s.requireSignedOut(); err != nil {
		return RegisterResult{}, err
	}
	if err := s.begin(); err != nil {
		return RegisterResult{}, err
	}
	defer s.end()

	if in.Password != in.PasswordConfirmation {
		return RegisterResult{}, s.fail(passwordMismatch())
	}

	req := client.RegisterRequest{
		Name:                 strings.TrimSpace(in.Name),
		Email:                common.NormalizeEmail(in.Email),
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	}
	if fields := validation.Struct(req); fields != nil {
		return RegisterResult{}, s.fail(client.NewValidationError("", fields))
	}

	s.mu.Lock()
	prev := s.state
	s.setState(ctx, models.AuthRegistering)
	s.mu.Unlock()

	msg, err := s.gateway.Register(ctx, req)
	if err != nil {
		s.mu.Lock()
		if prev == models.AuthPendingVerification {
			s.setState(ctx, prev)
		} else {
			s.setState(ctx, models.AuthUnauthenticated)
		}
		s.err = err
		s.mu.Unlock()
		s.log.Info(ctx, "registration failed", "email", req.Email, "error", err)
		return RegisterResult{}, err
	}

	next := s.now().Add(s.cooldown)
	s.mu.Lock()
	s.pending = &models.PendingVerification{Email: req.Email, OTPResendAvailableAt: next}
	s.resendAt[req.Email] = next
	s.setState(ctx, models.AuthPendingVerification)
	s.err = nil
	s.mu.Unlock()

	return RegisterResult{Success: true, Email: req.Email, Message: msg}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, email, code string) (*models.Session, error) {
	s.Initialize(ctx)
	if err := s.requireSignedOut(); err != nil {
		return nil, err
	}
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	form := otpForm{Email: common.NormalizeEmail(email), Code: normalizeOTP(code)}

	s.mu.Lock()
	if s.pending != nil && s.pending.Email == form.Email {
		s.pending.EnteredCode = form.Code
	}
	s.mu.Unlock()

	if fields := validation.Struct(form); fields != nil {
		s.clearEnteredCode(form.Email)
		return nil, s.fail(client.NewValidationError("", fields))
	}

	res, err := s.gateway.VerifyOTP(ctx, form.Email, form.Code)
	if err != nil {
		s.clearEnteredCode(form.Email)
		s.log.Info(ctx, "otp verification failed", "email", form.Email, "error", err)
		return nil, s.fail(err)
	}

	session := s.newSession(ctx, res)
	session.IsNewUser = true

	if !session.Valid() {
		// Verified, but the gateway wants a regular login.
		s.mu.Lock()
		s.pending = nil
		delete(s.resendAt, form.Email)
		s.setState(ctx, models.AuthUnauthenticated)
		s.err = nil
		s.mu.Unlock()
		return nil, nil
	}

	s.persist(ctx, session)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.pending = nil
	delete(s.resendAt, form.Email)
	s.setState(ctx, models.AuthAuthenticated)
	s.err = nil
	return session.Clone(), nil
}

func (s *authService) ResendOTP(ctx context.Context, email string) error {
	s.Initialize(ctx)
	if err := s.requireSignedOut(); err != nil {
		return err
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	form := emailForm{Email: common.NormalizeEmail(email)}
	if fields := validation.Struct(form); fields != nil {
		return s.fail(client.NewValidationError("", fields))
	}

	now := s.now()
	s.mu.Lock()
	prev, armed := s.resendAt[form.Email]
	if armed && now.Before(prev) {
		s.mu.Unlock()
		return s.fail(&CooldownError{Remaining: prev.Sub(now)})
	}
	s.armCooldown(form.Email, now.Add(s.cooldown))
	s.mu.Unlock()

	if _, err := s.gateway.ResendOTP(ctx, form.Email); err != nil {
		s.mu.Lock()
		if armed {
			s.armCooldown(form.Email, prev)
		} else {
			delete(s.resendAt, form.Email)
			if s.pending != nil && s.pending.Email == form.Email {
				s.pending.OTPResendAvailableAt = time.Time{}
			}
		}
		s.err = err
		s.mu.Unlock()
		s.log.Info(ctx, "otp resend failed", "email", form.Email, "error", err)
		return err
	}

	s.succeed()
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	s.Initialize(ctx)
	if err := s.requireSignedOut(); err != nil {
		return nil, err
	}
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	form := loginForm{Email: common.NormalizeEmail(email), Password: password}
	if fields := validation.Struct(form); fields != nil {
		return nil, s.fail(client.NewValidationError("", fields))
	}

	res, err := s.gateway.Login(ctx, form.Email, form.Password)
	if err == nil {
		session := s.newSession(ctx, res)
		if session.Valid() {
			s.persist(ctx, session)

			s.mu.Lock()
			defer s.mu.Unlock()
			s.session = session
			s.pending = nil
			s.setState(ctx, models.AuthAuthenticated)
			s.err = nil
			return session.Clone(), nil
		}
		err = &client.ServerError{Message: "login response carries no session"}
	}

	s.mu.Lock()
	s.setState(ctx, models.AuthUnauthenticated)
	s.err = err
	s.mu.Unlock()
	s.log.Info(ctx, "login failed", "email", form.Email, "error", err)
	return nil, err
}

// Logout ends the session locally no matter what the gateway answers.
func (s *authService) Logout(ctx context.Context) error {
	s.Initialize(ctx)
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.mu.RLock()
	var token string
	if s.session != nil {
		token = s.session.AuthToken
	}
	s.mu.RUnlock()

	if token != "" {
		if err := s.gateway.Logout(ctx, token); err != nil {
			s.log.Warn(ctx, "gateway logout failed", "error", err)
		}
	}
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn(ctx, "clear persisted session", "error", err)
	}

	s.mu.Lock()
	s.session = nil
	s.pending = nil
	clear(s.resendAt)
	s.setState(ctx, models.AuthUnauthenticated)
	s.err = nil
	s.mu.Unlock()

	if s.onboarding != nil {
		s.onboarding.Reset()
	}
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}
	defer s.end()

	form := emailForm{Email: common.NormalizeEmail(email)}
	if fields := validation.Struct(form); fields != nil {
		return "", s.fail(client.NewValidationError("", fields))
	}

	msg, err := s.gateway.RequestPasswordReset(ctx, form.Email)
	if err != nil {
		return "", s.fail(err)
	}
	s.succeed()
	return msg, nil
}

func (s *authService) ResetPassword(ctx context.Context, in ResetPasswordInput) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}
	defer s.end()

	if in.Password != in.PasswordConfirmation {
		return "", s.fail(passwordMismatch())
	}

	req := client.ResetPasswordRequest{
		Token:                strings.TrimSpace(in.Token),
		Email:                common.NormalizeEmail(in.Email),
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	}
	if fields := validation.Struct(req); fields != nil {
		return "", s.fail(client.NewValidationError("", fields))
	}

	msg, err := s.gateway.ResetPassword(ctx, req)
	if err != nil {
		return "", s.fail(err)
	}
	s.succeed()
	return msg, nil
}

// CompleteOnboarding flags the current session as onboarded and writes it
// through to the store. Nothing is sent to the gateway.
func (s *authService) CompleteOnboarding(ctx context.Context) error {
	s.Initialize(ctx)
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	if s.state != models.AuthAuthenticated || !s.session.Valid() {
		s.err = ErrNotAuthenticated
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.session.HasCompletedOnboarding = true
	snapshot := s.session.Clone()
	s.err = nil
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	if err := s.store.MarkOnboarded(ctx, snapshot.User.ID); err != nil {
		s.log.Warn(ctx, "record onboarding", "user_id", snapshot.User.ID, "error", err)
	}
	return nil
}

func (s *authService) State() models.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *authService) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

func (s *authService) Pending() *models.PendingVerification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending.Clone()
}

func (s *authService) Loading() bool {
	return s.loading.Load()
}

func (s *authService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *authService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == models.AuthAuthenticated && s.session.Valid()
}

// begin claims the loading flag. The caller must call end when it returned nil.
func (s *authService) begin() error {
	if !s.loading.CompareAndSwap(false, true) {
		return s.fail(ErrBusy)
	}
	return nil
}

func (s *authService) end() {
	s.loading.Store(false)
}

func (s *authService) fail(err error) error {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	return err
}

func (s *authService) succeed() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
}

func (s *authService) requireSignedOut() error {
	if s.State() == models.AuthAuthenticated {
		return s.fail(ErrInvalidState)
	}
	return nil
}

// setState must be called with mu held.
func (s *authService) setState(ctx context.Context, next models.AuthState) {
	if s.state == next {
		return
	}
	s.log.Info(ctx, "auth state changed", "from", s.state.String(), "to", next.String())
	s.state = next
}

// armCooldown must be called with mu held.
func (s *authService) armCooldown(email string, at time.Time) {
	s.resendAt[email] = at
	if s.pending != nil && s.pending.Email == email {
		s.pending.OTPResendAvailableAt = at
	}
}

func (s *authService) clearEnteredCode(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil && s.pending.Email == email {
		s.pending.EnteredCode = ""
	}
}

// newSession builds the session for a gateway answer. The onboarding flag
// comes from the account record or from an earlier completion on this device.
func (s *authService) newSession(ctx context.Context, res *client.AuthResult) *models.Session {
	session := &models.Session{AuthToken: res.Token}
	if res.User != nil {
		session.User = *res.User
	}
	session.HasCompletedOnboarding = session.User.HasCompletedOnboarding ||
		(session.User.ID != "" && s.store.Onboarded(ctx, session.User.ID))
	return session
}

// persist writes the session through; a storage failure only costs the
// session on the next start, so it is logged and swallowed.
func (s *authService) persist(ctx context.Context, session *models.Session) {
	if err := s.store.Save(ctx, session); err != nil {
		s.log.Warn(ctx, "persist session", "user_id", session.User.ID, "error", err)
	}
}

func passwordMismatch() error {
	return client.NewValidationError(msgPasswordMismatch, map[string]string{
		"password_confirmation": msgPasswordMismatch,
	})
}

type emailForm struct {
	Email string `json:"email" validate:"required,email"`
}

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type otpForm struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,otp"`
}

// normalizeOTP drops the separators people paste along with a code.
func normalizeOTP(code string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		}
		return r
	}, strings.TrimSpace(code))
}
