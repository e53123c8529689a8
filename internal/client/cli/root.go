package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt status: "(<userName|phone> <state>)".
func (a *App) getStatus() string {
	s := a.authService.Snapshot()

	who := s.PendingPhoneNumber
	if s.User != nil {
		who = s.User.UserName
	}
	if who == "" {
		return fmt.Sprintf("(%s)", s.State)
	}
	return fmt.Sprintf("(%s %s)", who, s.State)
}

// Root restores any saved session and runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	a.authService.Initialize(ctx)

	fmt.Fprintln(a.out, "Welcome to pgdesk CLI (type 'help' for commands)")
	if u := a.authService.Snapshot().User; u != nil {
		fmt.Fprintf(a.out, "Signed in as %s.\n", u.UserName)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
