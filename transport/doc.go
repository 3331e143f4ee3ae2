// Package transport provides an HTTP implementation of the fetchstate.Getter interface.
//
// Every request is a plain GET carrying an Accept: application/json header and a fresh
// X-Request-ID, so a failed fetch can be correlated with the server's logs.
// Non-2xx statuses are returned as *StatusError with the method, full URL, and status text to aid diagnostics.
//
// The package enforces no timeout of its own; use WithTimeout or a client with Timeout set.
package transport
