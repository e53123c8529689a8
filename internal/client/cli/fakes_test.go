package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/pgdesk/internal/client/models"
	"github.com/dmitrijs2005/pgdesk/internal/client/services"
)

// fakeAuth is a scripted AuthService that records the last arguments.
type fakeAuth struct {
	snap services.Snapshot

	initCalled bool

	sendPhone string
	sendErr   error

	loginPhone string
	loginOTP   string
	loginUser  *models.User
	loginErr   error

	regReq models.RegisterRequest
	regErr error

	logoutCalled bool
	editCalled   bool
}

func (f *fakeAuth) Initialize(context.Context) { f.initCalled = true }

func (f *fakeAuth) SendOTP(_ context.Context, phone string) error {
	f.sendPhone = phone
	if f.sendErr != nil {
		f.snap.LastError = f.sendErr.Error()
		return f.sendErr
	}
	f.snap.State = services.StateAwaitingOTP
	f.snap.PendingPhoneNumber = phone
	return nil
}

func (f *fakeAuth) Login(_ context.Context, phone, otp string) error {
	f.loginPhone, f.loginOTP = phone, otp
	if f.loginErr != nil {
		f.snap.LastError = f.loginErr.Error()
		return f.loginErr
	}
	f.snap.State = services.StateAuthenticated
	f.snap.User = f.loginUser
	f.snap.PendingPhoneNumber = ""
	return nil
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) error {
	f.regReq = req
	if f.regErr != nil {
		f.snap.LastError = f.regErr.Error()
	}
	return f.regErr
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalled = true
	f.snap = services.Snapshot{State: services.StateUnauthenticated}
}

func (f *fakeAuth) ClearError() { f.snap.LastError = "" }

func (f *fakeAuth) EditNumber() {
	f.editCalled = true
	f.snap.State = services.StateUnauthenticated
	f.snap.PendingPhoneNumber = ""
}

func (f *fakeAuth) SetPhoneInput(s string)      { f.snap.CurrentPhoneInput = s }
func (f *fakeAuth) Snapshot() services.Snapshot { return f.snap }
func (f *fakeAuth) State() services.State       { return f.snap.State }
func (f *fakeAuth) Token() string               { return f.snap.AuthToken }

func (f *fakeAuth) Subscribe() (<-chan services.Snapshot, func()) {
	ch := make(chan services.Snapshot)
	return ch, func() { close(ch) }
}

// stubInputs replaces both prompt helpers with a queue of answers.
func stubInputs(t *testing.T, answers ...string) {
	t.Helper()
	origST, origGS := getSimpleText, getSecret
	next := func(*bufio.Reader, string, io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getSimpleText = next
	getSecret = next
	t.Cleanup(func() {
		getSimpleText = origST
		getSecret = origGS
	})
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
