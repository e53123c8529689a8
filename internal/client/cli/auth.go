package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pgdesk/internal/client/models"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
)

// report prints the session's last error for a failed operation.
func (a *App) report(err error) error {
	msg := a.authService.Snapshot().LastError
	if msg == "" {
		msg = err.Error()
	}
	fmt.Fprintln(a.out, "Error:", msg)
	return err
}

// SendOTP asks for a phone number and requests a code for it.
func (a *App) SendOTP(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "Enter phone number", a.out)
	if err != nil {
		return err
	}
	a.authService.SetPhoneInput(phone)

	if err := a.authService.SendOTP(ctx, phone); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "OTP sent to %s. Type 'verify' to enter it.\n", phone)
	return nil
}

// Resend repeats the OTP request for the pending phone number.
func (a *App) Resend(ctx context.Context) error {
	phone := a.authService.Snapshot().PendingPhoneNumber
	if phone == "" {
		fmt.Fprintln(a.out, "No pending phone number. Use 'otp' first.")
		return nil
	}
	if err := a.authService.SendOTP(ctx, phone); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "OTP re-sent to %s.\n", phone)
	return nil
}

// Verify reads the OTP and logs in with the pending phone number.
func (a *App) Verify(ctx context.Context) error {
	phone := a.authService.Snapshot().PendingPhoneNumber
	if phone == "" {
		fmt.Fprintln(a.out, "No OTP requested yet. Use 'otp' first.")
		return nil
	}

	otp, err := getSecret(a.reader, "Enter OTP", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, phone, otp); err != nil {
		return a.report(err)
	}

	if u := a.authService.Snapshot().User; u != nil {
		fmt.Fprintf(a.out, "Welcome, %s (%s)!\n", u.UserName, u.Role)
	}
	return nil
}

// EditNumber leaves the OTP step so another number can be entered.
func (a *App) EditNumber(context.Context) error {
	a.authService.EditNumber()
	return nil
}

// Register collects the owner's details and creates the account. A
// separate OTP login is still required afterwards.
func (a *App) Register(ctx context.Context) error {
	var req models.RegisterRequest
	var err error

	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Password, err = getSecret(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if req.Name, err = getSimpleText(a.reader, "Enter full name", a.out); err != nil {
		return err
	}
	if req.PhoneNumber, err = getSimpleText(a.reader, "Enter phone number", a.out); err != nil {
		return err
	}
	ownership, err := getSimpleText(a.reader, "Ownership type (OWNED/LEASED)", a.out)
	if err != nil {
		return err
	}
	req.OwnershipType = models.OwnershipType(strings.ToUpper(ownership))

	if err := a.authService.Register(ctx, req); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Registered! Use 'otp' to log in.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Status prints the session snapshot.
func (a *App) Status(context.Context) error {
	s := a.authService.Snapshot()
	fmt.Fprintf(a.out, "state: %s\n", s.State)
	if s.User != nil {
		fmt.Fprintf(a.out, "user:  %s <%s> (%s)\n", s.User.UserName, s.User.Email, s.User.Role)
	}
	if s.PendingPhoneNumber != "" {
		fmt.Fprintf(a.out, "phone: %s\n", s.PendingPhoneNumber)
	}
	if s.LastError != "" {
		fmt.Fprintf(a.out, "error: %s\n", s.LastError)
	}
	return nil
}
