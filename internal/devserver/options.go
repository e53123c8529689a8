package devserver

import "time"

type Options struct {
	// Prefix is prepended to every route, e.g. "/api".
	Prefix string
	// Secret signs access tokens (HS256).
	Secret    string
	AccessTTL time.Duration
	OTPTTL    time.Duration
	// SendLimit OTP requests are allowed per phone number per SendWindow.
	SendLimit  int
	SendWindow time.Duration
	// FixedCode, when set, is issued instead of a random code.
	FixedCode string
}

func DefaultOptions() Options {
	return Options{
		Prefix:     "/api",
		Secret:     "pgdesk-dev-secret",
		AccessTTL:  24 * time.Hour,
		OTPTTL:     5 * time.Minute,
		SendLimit:  3,
		SendWindow: time.Minute,
	}
}
