package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/skillclip/internal/client/guard"
)

// maxRedirects bounds how many guard redirects Open follows.
const maxRedirects = 3

// Open navigates to path, following guard redirects. A redirect to sign-in
// remembers the requested path for after login; a redirect to onboarding
// starts the questionnaire.
func (a *App) Open(ctx context.Context, path string) error {
	for i := 0; i <= maxRedirects; i++ {
		d := a.guard.Evaluate(a.authService, a.onboarding, path)
		a.log.Debug(ctx, "route evaluated", "path", path, "decision", d.Kind.String(), "location", d.Location)

		switch d.Kind {
		case guard.Wait:
			fmt.Fprintln(a.out, "Loading...")
			return nil

		case guard.Allow:
			a.location = path
			fmt.Fprintf(a.out, "Opened %s\n", path)
			return nil

		case guard.Redirect:
			switch {
			case a.isSignIn(d.Location):
				a.location = a.routes.SignIn
				a.returnTo = a.guard.ReturnPath(d.Location, a.routes.Home)
				fmt.Fprintf(a.out, "Sign in to open %s. Type 'login' (or 'register' to create an account).\n", path)
				return nil
			case d.Location == a.routes.Onboarding:
				a.location = a.routes.Onboarding
				fmt.Fprintln(a.out, "Let's set up your profile first.")
				return a.Onboard(ctx)
			}
			path = d.Location
		}
	}

	return fmt.Errorf("too many redirects opening %s", path)
}

func (a *App) isSignIn(location string) bool {
	return location == a.routes.SignIn || strings.HasPrefix(location, a.routes.SignIn+"?")
}
