// Package cli provides the interactive pgdesk command-line client.
//
// It wires configuration, local storage, the backend API client and the
// session service into a small REPL that walks through the OTP login flow:
// request a code, verify it, register a property owner, log out.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
