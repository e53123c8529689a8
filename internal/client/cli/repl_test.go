package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/pgdesk/internal/client/services"
)

type fakeExec struct {
	st    services.State
	calls []string
}

func (f *fakeExec) state() services.State { return f.st }
func (f *fakeExec) SendOTP(context.Context) error {
	f.calls = append(f.calls, "otp")
	f.st = services.StateAwaitingOTP
	return nil
}
func (f *fakeExec) Resend(context.Context) error { f.calls = append(f.calls, "resend"); return nil }
func (f *fakeExec) Verify(context.Context) error {
	f.calls = append(f.calls, "verify")
	f.st = services.StateAuthenticated
	return nil
}
func (f *fakeExec) EditNumber(context.Context) error {
	f.calls = append(f.calls, "edit")
	f.st = services.StateUnauthenticated
	return nil
}
func (f *fakeExec) Register(context.Context) error { f.calls = append(f.calls, "register"); return nil }
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.st = services.StateUnauthenticated
	return nil
}
func (f *fakeExec) Status(context.Context) error { f.calls = append(f.calls, "status"); return nil }
func (f *fakeExec) Stats(context.Context) error  { f.calls = append(f.calls, "stats"); return nil }

func TestRunREPL_Flow(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"otp",
		"help",
		"resend",
		"edit",
		"otp",
		"verify",
		"",
		"status",
		"stats",
		"register",
		"logout",
		"foobar",
		"exit",
		"status",
	}, "\n")

	var buf bytes.Buffer
	exec := &fakeExec{st: services.StateUnauthenticated}
	runREPL(context.Background(), exec, func() string { return "(x)" }, rdr(input), &buf)

	assert.Equal(t, []string{
		"otp", "resend", "edit", "otp", "verify", "status", "stats", "register", "logout",
	}, exec.calls)

	out := buf.String()
	assert.Contains(t, out, "Available commands: otp, register")
	assert.Contains(t, out, "Available commands: verify, resend")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
	assert.Contains(t, out, "pgdesk (x)>")
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("status"), io.Discard)

	assert.Equal(t, []string{"status"}, exec.calls)
}

func TestRunREPL_EmptyInput(t *testing.T) {
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(""), io.Discard)

	assert.Empty(t, exec.calls)
}

func TestHelpText(t *testing.T) {
	assert.Contains(t, helpText(services.StateAuthenticated), "logout")
	assert.NotContains(t, helpText(services.StateAuthenticated), "verify")
	assert.Contains(t, helpText(services.StateInitializing), "otp")
}
