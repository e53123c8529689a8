// Package api is the client's JSON-over-HTTP transport to the rental
// backend.
//
// HTTPClient performs single requests against a fixed base URL with a
// bounded wait and best-effort decoding: empty and non-JSON success bodies
// are wrapped in synthetic envelopes instead of failing. Failures are
// reported as *TimeoutError, *HTTPError or *UnknownError, which also match
// the sentinels ErrTimeout, ErrHTTP and ErrUnknown through errors.Is.
//
// Client adds the typed auth endpoints used by the session service.
// No layer here retries.
package api
