package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/skillclip/internal/client/client"
	"github.com/dmitrijs2005/skillclip/internal/client/services"
	"github.com/dmitrijs2005/skillclip/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getList = GetList

// Register prompts for the sign-up form and submits it. On success the user
// is told where the verification code went.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, confirmation, err := a.readNewPassword()
	if err != nil {
		return err
	}

	res, err := a.authService.Register(ctx, services.RegisterInput{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
	})
	if err != nil {
		a.report(err)
		return err
	}

	if res.Message != "" {
		fmt.Fprintln(a.out, res.Message)
	}
	fmt.Fprintf(a.out, "We sent a 6-digit code to %s. Type 'verify' to enter it.\n", res.Email)
	return nil
}

// Verify asks for the e-mailed code. The address defaults to the one that
// just registered.
func (a *App) Verify(ctx context.Context) error {
	email, err := a.pendingEmail()
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter the 6-digit code", a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.VerifyOTP(ctx, email, code)
	if err != nil {
		a.report(err)
		if errors.Is(err, client.ErrInvalidCode) {
			fmt.Fprintln(a.out, "Type 'resend' to get a new code.")
		}
		return err
	}

	if s == nil {
		fmt.Fprintln(a.out, "Your email is verified. Type 'login' to sign in.")
		return nil
	}

	fmt.Fprintf(a.out, "Welcome to SkillClip, %s!\n", s.User.Name)
	return a.Open(ctx, a.routes.Home)
}

// Resend requests a new verification code, subject to the cooldown.
func (a *App) Resend(ctx context.Context) error {
	email, err := a.pendingEmail()
	if err != nil {
		return err
	}
	if err := a.authService.ResendOTP(ctx, email); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "A new code was sent to %s.\n", email)
	return nil
}

// Login prompts for credentials and, on success, continues to the path that
// triggered the sign-in, or to the dashboard home.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		a.report(err)
		if errors.Is(err, client.ErrUnverified) {
			fmt.Fprintln(a.out, "Type 'resend' to get a verification code, then 'verify'.")
		}
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s.\n", s.User.Email)

	target := a.returnTo
	if target == "" {
		target = a.routes.Home
	}
	a.returnTo = ""
	return a.Open(ctx, target)
}

// Logout ends the session. The local session is dropped even when the
// gateway cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.report(err)
		return err
	}
	a.location = a.routes.SignIn
	a.returnTo = ""
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Forgot requests a password reset e-mail.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	msg, err := a.authService.RequestPasswordReset(ctx, email)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, orDefault(msg, "If the address is registered, a reset link is on its way."))
	return nil
}

// Reset completes a password reset with the token from the e-mail.
func (a *App) Reset(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter the reset token from the email", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, confirmation, err := a.readNewPassword()
	if err != nil {
		return err
	}

	msg, err := a.authService.ResetPassword(ctx, services.ResetPasswordInput{
		Token:                token,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
	})
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, orDefault(msg, "Password updated. Type 'login' to sign in."))
	return nil
}

// WhoAmI prints the current user and auth state.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.authService.Session()
	if s == nil {
		fmt.Fprintf(a.out, "Not signed in (%s).\n", a.authService.State())
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>, id %s\n", s.User.Name, s.User.Email, s.User.ID)
	fmt.Fprintf(a.out, "new user: %t, onboarding completed: %t\n", s.IsNewUser, s.HasCompletedOnboarding)
	return nil
}

func (a *App) readNewPassword() (string, string, error) {
	password, err := getPassword("Password", a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword("Confirm password", a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(confirmation)

	return string(password), string(confirmation), nil
}

func (a *App) pendingEmail() (string, error) {
	if p := a.authService.Pending(); p != nil {
		return p.Email, nil
	}
	return getSimpleText(a.reader, "Enter email", a.out)
}

// report prints err the way the user should see it: field problems one per
// line, everything else as a single message.
func (a *App) report(err error) {
	var ve *client.ValidationError
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		if ve.Message != "" {
			fmt.Fprintln(a.out, ve.Message)
		} else {
			fmt.Fprintln(a.out, "Please correct the following:")
		}
		keys := make([]string, 0, len(ve.Fields))
		for k := range ve.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(a.out, "  - %s: %s\n", k, ve.Fields[k])
		}
		return
	}
	fmt.Fprintln(a.out, client.UserMessage(err))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
