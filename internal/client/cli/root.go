package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if sess := a.authService.Session(); sess != nil {
		s = sess.User.Email + " "
	}
	s += a.authService.State().String()
	if a.location != "" {
		s += " " + a.location
	}
	return fmt.Sprintf(" (%s)", s)
}

// Root restores any persisted session, opens the dashboard home and runs the
// REPL until the user leaves.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to SkillClip CLI (type 'help' for commands)")

	state := a.authService.Initialize(ctx)
	a.log.Info(ctx, "session restored", "state", state.String())

	_ = a.Open(ctx, a.routes.Home)

	runREPL(ctx, a, a.getStatus, a.reader)
}
