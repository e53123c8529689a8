package services

import "github.com/dmitrijs2005/pgdesk/internal/client/models"

type State int

const (
	StateInitializing State = iota
	StateUnauthenticated
	StateAwaitingOTP
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAwaitingOTP:
		return "awaiting-otp"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the session at one point in time.
type Snapshot struct {
	State              State
	AuthToken          string
	User               *models.User
	PendingPhoneNumber string
	OTPScreenVisible   bool
	CurrentPhoneInput  string
	// IsLoading is true while any operation is in flight.
	IsLoading bool
	LastError string
}

// session is the mutable record behind AuthService. Callers hold the
// service mutex.
type session struct {
	state        State
	authToken    string
	user         *models.User
	pendingPhone string
	otpVisible   bool
	phoneInput   string
	inFlight     int
	lastError    string
}

func (s *session) snapshot() Snapshot {
	snap := Snapshot{
		State:              s.state,
		AuthToken:          s.authToken,
		PendingPhoneNumber: s.pendingPhone,
		OTPScreenVisible:   s.otpVisible,
		CurrentPhoneInput:  s.phoneInput,
		IsLoading:          s.inFlight > 0,
		LastError:          s.lastError,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *session) signOut() {
	s.state = StateUnauthenticated
	s.authToken = ""
	s.user = nil
	s.pendingPhone = ""
	s.otpVisible = false
}
