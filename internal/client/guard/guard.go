// Package guard decides whether a requested client path may be shown, given
// the authentication and onboarding state. It performs no I/O.
package guard

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/skillclip/internal/client/models"
)

// Kind is the outcome of an evaluation.
type Kind int

const (
	// Wait means the auth state is not known yet; show a placeholder and
	// evaluate again later.
	Wait Kind = iota
	Allow
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of Evaluate. Location is set for Redirect only.
type Decision struct {
	Kind     Kind
	Location string
}

// AuthView is the part of the auth service the guard reads.
type AuthView interface {
	State() models.AuthState
	Session() *models.Session
}

// OnboardingView is the part of the onboarding wizard the guard reads.
type OnboardingView interface {
	Completed() bool
}

// Routes names the paths the guard knows about.
type Routes struct {
	SignIn        string
	Onboarding    string
	Dashboard     string // prefix of every dashboard path
	Home          string // landing page after onboarding
	RedirectParam string
}

// DefaultRoutes mirrors the web client's layout.
var DefaultRoutes = Routes{
	SignIn:        "/login",
	Onboarding:    "/onboarding",
	Dashboard:     "/dashboard",
	Home:          "/dashboard",
	RedirectParam: "redirect",
}

// Guard evaluates paths against a fixed set of routes.
type Guard struct {
	routes Routes
}

func New(routes Routes) *Guard {
	return &Guard{routes: routes}
}

// Evaluate applies the rules in order:
//  1. auth still initializing: Wait;
//  2. protected path without a session: Redirect to sign-in, keeping path;
//  3. dashboard path before onboarding is done: Redirect to onboarding;
//  4. onboarding path after it is done: Redirect to home;
//  5. Allow.
//
// Dashboard and onboarding paths are protected. onboarding may be nil.
func (g *Guard) Evaluate(auth AuthView, onboarding OnboardingView, path string) Decision {
	if auth.State() == models.AuthInitializing {
		return Decision{Kind: Wait}
	}

	session := auth.Session()
	authenticated := auth.State() == models.AuthAuthenticated && session.Valid()
	dashboard := underPrefix(path, g.routes.Dashboard)
	onboardingPath := underPrefix(path, g.routes.Onboarding)

	if !authenticated {
		if dashboard || onboardingPath {
			return g.redirect(g.signInLocation(path))
		}
		return Decision{Kind: Allow}
	}

	done := session.HasCompletedOnboarding || (onboarding != nil && onboarding.Completed())
	switch {
	case !done && dashboard:
		return g.redirect(g.routes.Onboarding)
	case done && onboardingPath:
		return g.redirect(g.routes.Home)
	}
	return Decision{Kind: Allow}
}

// Evaluate checks path against DefaultRoutes.
func Evaluate(auth AuthView, onboarding OnboardingView, path string) Decision {
	return New(DefaultRoutes).Evaluate(auth, onboarding, path)
}

// ReturnPath extracts the path preserved by a sign-in redirect from
// location. Only local absolute paths are returned; anything else yields
// fallback.
func (g *Guard) ReturnPath(location, fallback string) string {
	u, err := url.Parse(location)
	if err != nil {
		return fallback
	}
	target := u.Query().Get(g.routes.RedirectParam)
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	return target
}

func (g *Guard) redirect(location string) Decision {
	return Decision{Kind: Redirect, Location: location}
}

func (g *Guard) signInLocation(path string) string {
	q := url.Values{g.routes.RedirectParam: []string{path}}
	return g.routes.SignIn + "?" + q.Encode()
}

// underPrefix reports whether path is prefix or lies below it on a segment
// boundary. Query and fragment are ignored.
func underPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	prefix = strings.TrimSuffix(prefix, "/")
	path = strings.TrimSuffix(path, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
