// Package commands implements the users CLI.
//
// The CLI hosts a users.List: it builds the HTTP transport and the fetcher from the environment
// (see internal/config) and command line flags, runs the list's initialization hook once,
// and renders the result as a table or as JSON.
package commands
