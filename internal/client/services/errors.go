package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/pgdesk/internal/client/api"
)

var (
	ErrEmptyPhoneNumber     = errors.New("phone number is required")
	ErrNoPendingOTP         = errors.New("no OTP has been sent; request one first")
	ErrAlreadyAuthenticated = errors.New("already signed in; log out first")
)

// User-facing messages produced by categorize.
const (
	MsgNetwork      = "Network error. Please check your internet connection and try again."
	MsgUserNotFound = "User not found. Please sign up first."
	MsgRateLimited  = "Too many attempts. Please wait a moment and try again."
	MsgSaveSession  = "Could not save your session. Please try again."
)

// Backend error codes recognised by categorize.
const (
	CodeUserNotFound = "USER_NOT_FOUND"
	CodeRateLimited  = "RATE_LIMITED"
)

// OpError is returned by the session operations. Error() is the message
// stored as the session's last error; the underlying cause stays reachable
// through errors.Is/As.
type OpError struct {
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string { return e.Message }

func (e *OpError) Unwrap() error { return e.Err }

// categorize maps a send-OTP failure to a user-facing message. Typed
// transport errors are checked first; the substring rules cover backends
// that only put the status in the message text.
func categorize(err error) string {
	var (
		te *api.TimeoutError
		ue *api.UnknownError
		he *api.HTTPError
	)
	switch {
	case errors.As(err, &te), errors.As(err, &ue):
		return MsgNetwork
	case errors.As(err, &he):
		switch {
		case he.Status == http.StatusNotFound || he.Code == CodeUserNotFound:
			return MsgUserNotFound
		case he.Status == http.StatusTooManyRequests || he.Code == CodeRateLimited:
			return MsgRateLimited
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "Network"):
		return MsgNetwork
	case strings.Contains(msg, "404"):
		return MsgUserNotFound
	case strings.Contains(msg, "429"):
		return MsgRateLimited
	}
	return msg
}
