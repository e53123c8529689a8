// Package devserver is a local stand-in for the rental backend's auth API.
//
// It serves POST <prefix>/auth/send-otp, <prefix>/auth/login and
// <prefix>/auth/property-owner/register with the same request and response
// shapes as the real backend, keeping owners and OTP codes in memory. OTP
// codes are written to the log instead of being sent by SMS. It exists for
// local development and end-to-end tests of the client.
package devserver
