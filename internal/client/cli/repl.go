package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pgdesk/internal/client/services"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	state() services.State
	SendOTP(ctx context.Context) error
	Resend(ctx context.Context) error
	Verify(ctx context.Context) error
	EditNumber(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Stats(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. Prompts and help are written to w, which should be
// the writer the commands print to. Which commands are offered depends on the session
// state:
//
//	Unauthenticated:
//	  - otp           : request a login code
//	  - register      : create a property owner account
//
//	Awaiting OTP:
//	  - verify        : enter the code and log in
//	  - resend        : request another code
//	  - edit          : go back and change the phone number
//
//	Authenticated:
//	  - logout        : end the session
//
//	Always: help, status, stats, exit | quit
//
// Command errors are reported by the handlers themselves; the loop keeps
// going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "pgdesk %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText(a.state()))

		case "otp", "login":
			_ = a.SendOTP(ctx)

		case "resend":
			_ = a.Resend(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "edit":
			_ = a.EditNumber(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

func helpText(s services.State) string {
	switch s {
	case services.StateAwaitingOTP:
		return "Available commands: verify, resend, edit, status, stats, exit"
	case services.StateAuthenticated:
		return "Available commands: status, stats, logout, exit"
	default:
		return "Available commands: otp, register, status, stats, exit"
	}
}
