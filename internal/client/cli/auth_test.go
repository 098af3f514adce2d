package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/skillclip/internal/client/client"
	"github.com/dmitrijs2005/skillclip/internal/client/guard"
	"github.com/dmitrijs2005/skillclip/internal/client/models"
	"github.com/dmitrijs2005/skillclip/internal/client/services"
	"github.com/dmitrijs2005/skillclip/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeGateway struct {
	RegisterErr error
	LoginRet    *client.AuthResult
	LoginErr    error
	VerifyRet   *client.AuthResult
	VerifyErr   error
	ResendErr   error
	ResetErr    error

	LastRegister    client.RegisterRequest
	LastLoginEmail  string
	LastLoginPass   string
	LastLogoutToken string
	LastVerifyCode  string
	LastResendEmail string
	LastForgotEmail string
	LastReset       client.ResetPasswordRequest
}

func (f *fakeGateway) Register(_ context.Context, req client.RegisterRequest) (string, error) {
	f.LastRegister = req
	return "Registration successful", f.RegisterErr
}

func (f *fakeGateway) Login(_ context.Context, email, password string) (*client.AuthResult, error) {
	f.LastLoginEmail, f.LastLoginPass = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeGateway) Logout(_ context.Context, token string) error {
	f.LastLogoutToken = token
	return nil
}

func (f *fakeGateway) VerifyOTP(_ context.Context, _, code string) (*client.AuthResult, error) {
	f.LastVerifyCode = code
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeGateway) ResendOTP(_ context.Context, email string) (string, error) {
	f.LastResendEmail = email
	return "", f.ResendErr
}

func (f *fakeGateway) RequestPasswordReset(_ context.Context, email string) (string, error) {
	f.LastForgotEmail = email
	return "", nil
}

func (f *fakeGateway) ResetPassword(_ context.Context, req client.ResetPasswordRequest) (string, error) {
	f.LastReset = req
	return "Password reset", f.ResetErr
}

type memStore struct {
	saved     *models.Session
	onboarded map[string]bool
}

func (m *memStore) Save(_ context.Context, s *models.Session) error {
	m.saved = s.Clone()
	return nil
}

func (m *memStore) Load(context.Context) *models.Session { return m.saved.Clone() }

func (m *memStore) Clear(context.Context) error {
	m.saved = nil
	return nil
}

func (m *memStore) MarkOnboarded(_ context.Context, userID string) error {
	if m.onboarded == nil {
		m.onboarded = make(map[string]bool)
	}
	m.onboarded[userID] = true
	return nil
}

func (m *memStore) Onboarded(_ context.Context, userID string) bool { return m.onboarded[userID] }

// ---- helpers ----

var ann = models.User{ID: "u1", Name: "Ann", Email: "ann@example.com"}

// stubInputs replaces the prompt helpers with queues of canned answers.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(string, io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func newTestApp(t *testing.T, gw *fakeGateway, store *memStore) (*App, *bytes.Buffer) {
	t.Helper()
	wizard := services.NewOnboardingWizard()
	as := services.NewAuthService(gw, store,
		services.WithOnboarding(wizard),
		services.WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }),
	)
	as.Initialize(context.Background())

	var out bytes.Buffer
	return &App{
		log:         logging.Nop(),
		authService: as,
		onboarding:  wizard,
		guard:       guard.New(guard.DefaultRoutes),
		routes:      guard.DefaultRoutes,
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         &out,
	}, &out
}

func onboardedStore() *memStore {
	return &memStore{saved: &models.Session{User: ann, AuthToken: "tok", HasCompletedOnboarding: true}}
}

// ---- tests ----

func TestRegister_Success(t *testing.T) {
	gw := &fakeGateway{}
	a, out := newTestApp(t, gw, &memStore{})
	stubInputs(t, []string{"Ann", "ann@example.com"}, "secret123", "secret123")

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, "ann@example.com", gw.LastRegister.Email)
	assert.Equal(t, "secret123", gw.LastRegister.Password)
	assert.Equal(t, models.AuthPendingVerification, a.authService.State())
	assert.Contains(t, out.String(), "We sent a 6-digit code to ann@example.com")
}

func TestRegister_MismatchShowsFieldError(t *testing.T) {
	gw := &fakeGateway{}
	a, out := newTestApp(t, gw, &memStore{})
	stubInputs(t, []string{"Ann", "ann@example.com"}, "secret123", "secret124")

	err := a.Register(context.Background())

	require.ErrorIs(t, err, client.ErrValidation)
	assert.Empty(t, gw.LastRegister.Email)
	assert.Contains(t, out.String(), "Passwords do not match")
	assert.Contains(t, out.String(), "  - password_confirmation: Passwords do not match")
}

func TestVerify_UsesPendingEmailAndStartsOnboarding(t *testing.T) {
	gw := &fakeGateway{VerifyRet: &client.AuthResult{Token: "tok", User: &ann}}
	a, out := newTestApp(t, gw, &memStore{})
	stubInputs(t, []string{"Ann", "ann@example.com", "123-456", "cancel"}, "secret123", "secret123")

	require.NoError(t, a.Register(context.Background()))
	err := a.Verify(context.Background())

	require.ErrorIs(t, err, errOnboardingCancelled)
	assert.Equal(t, "123456", gw.LastVerifyCode)
	assert.Equal(t, models.AuthAuthenticated, a.authService.State())
	assert.Equal(t, "/onboarding", a.location)
	assert.Contains(t, out.String(), "Welcome to SkillClip, Ann!")
	assert.Contains(t, out.String(), "Let's set up your profile first.")
}

func TestVerify_WrongCodeHintsResend(t *testing.T) {
	gw := &fakeGateway{VerifyErr: &client.ServerError{Status: 400, Code: client.CodeInvalidOTP, Message: "Invalid or expired code"}}
	a, out := newTestApp(t, gw, &memStore{})
	stubInputs(t, []string{"ann@example.com", "000000"})

	err := a.Verify(context.Background())

	require.ErrorIs(t, err, client.ErrInvalidCode)
	assert.Contains(t, out.String(), "Invalid or expired code")
	assert.Contains(t, out.String(), "Type 'resend'")
}

func TestResend_Cooldown(t *testing.T) {
	gw := &fakeGateway{}
	a, out := newTestApp(t, gw, &memStore{})
	stubInputs(t, []string{"Ann", "ann@example.com"}, "secret123", "secret123")
	require.NoError(t, a.Register(context.Background()))

	err := a.Resend(context.Background())

	require.ErrorIs(t, err, services.ErrResendCooldown)
	assert.Empty(t, gw.LastResendEmail)
	assert.Contains(t, out.String(), "please wait 60s")
}

func TestLogin_ReturnsToRequestedPath(t *testing.T) {
	gw := &fakeGateway{LoginRet: &client.AuthResult{Token: "tok", User: &ann}}
	store := &memStore{}
	a, out := newTestApp(t, gw, store)

	require.NoError(t, a.Open(context.Background(), "/dashboard/videos"))
	assert.Equal(t, "/login", a.location)
	assert.Equal(t, "/dashboard/videos", a.returnTo)

	// The account never finished onboarding, so it is asked first; cancel it.
	stubInputs(t, []string{"ann@example.com", "cancel"}, "secret123")
	err := a.Login(context.Background())
	require.ErrorIs(t, err, errOnboardingCancelled)
	assert.Equal(t, "secret123", gw.LastLoginPass)
	assert.NotNil(t, store.saved)
	assert.Contains(t, out.String(), "Signed in as ann@example.com.")
	assert.Empty(t, a.returnTo)
}

func TestLogin_OnboardedUserLandsOnRequestedPath(t *testing.T) {
	gw := &fakeGateway{LoginRet: &client.AuthResult{Token: "tok", User: &ann}}
	a, out := newTestApp(t, gw, &memStore{})
	a.returnTo = "/dashboard/videos"

	require.NoError(t, a.onboarding.Next(services.StepInput{Role: models.RoleLearner}))
	require.NoError(t, a.onboarding.Next(services.StepInput{Values: []string{"a", "b", "c"}}))
	require.NoError(t, a.onboarding.Next(services.StepInput{}))
	require.NoError(t, a.onboarding.Next(services.StepInput{HowDidYouHear: "friend"}))

	stubInputs(t, []string{"ann@example.com"}, "secret123")
	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "/dashboard/videos", a.location)
	assert.Contains(t, out.String(), "Opened /dashboard/videos")
}

func TestLogin_Unverified(t *testing.T) {
	gw := &fakeGateway{LoginErr: &client.ServerError{Status: 403, Code: client.CodeEmailNotVerified, Message: "Please verify your email"}}
	a, out := newTestApp(t, gw, &memStore{})
	stubInputs(t, []string{"ann@example.com"}, "secret123")

	err := a.Login(context.Background())

	require.ErrorIs(t, err, client.ErrUnverified)
	assert.Contains(t, out.String(), "Please verify your email")
	assert.Contains(t, out.String(), "then 'verify'")
}

func TestLogin_Offline(t *testing.T) {
	gw := &fakeGateway{LoginErr: &client.TransportError{Err: errors.New("dial tcp: connection refused")}}
	a, out := newTestApp(t, gw, &memStore{})
	stubInputs(t, []string{"ann@example.com"}, "secret123")

	require.Error(t, a.Login(context.Background()))
	assert.Contains(t, out.String(), "Unable to reach the server")
	assert.NotContains(t, out.String(), "connection refused")
}

func TestLogout(t *testing.T) {
	gw := &fakeGateway{}
	store := onboardedStore()
	a, out := newTestApp(t, gw, store)

	require.NoError(t, a.Logout(context.Background()))

	assert.Equal(t, "tok", gw.LastLogoutToken)
	assert.Nil(t, store.saved)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "/login", a.location)
	assert.Contains(t, out.String(), "Signed out.")
}

func TestForgotAndReset(t *testing.T) {
	gw := &fakeGateway{}
	a, out := newTestApp(t, gw, &memStore{})
	stubInputs(t, []string{"ann@example.com", "reset-tok", "ann@example.com"}, "newpass123", "newpass123")

	require.NoError(t, a.Forgot(context.Background()))
	require.NoError(t, a.Reset(context.Background()))

	assert.Equal(t, "ann@example.com", gw.LastForgotEmail)
	assert.Equal(t, "reset-tok", gw.LastReset.Token)
	assert.Contains(t, out.String(), "If the address is registered")
	assert.Contains(t, out.String(), "Password reset")
}

func TestWhoAmI(t *testing.T) {
	a, out := newTestApp(t, &fakeGateway{}, onboardedStore())
	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Ann <ann@example.com>, id u1")

	b, out := newTestApp(t, &fakeGateway{}, &memStore{})
	require.NoError(t, b.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Not signed in (unauthenticated).")
}
