// Package services contains the client's application services.
//
// AuthService is the session store: the single source of truth for the
// authentication state. It drives the OTP login flow against an api.Client,
// persists the token and cached user through a Store and publishes
// snapshots of the session to subscribers (the UI layer).
//
// Session lifecycle:
//
//	Initializing -> Unauthenticated <-> AwaitingOTP -> Authenticated
//	any state -> Unauthenticated (Logout)
//
// AuthService is constructed once per process and passed to whatever needs
// it; it is safe for concurrent use.
package services
