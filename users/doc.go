// Package users loads the list of users shown by the users view.
//
// A List fetches the users once when it is initialized and keeps the last successful result.
// Loading and error state live in the fetcher it is composed with; failures are logged, never retried,
// and never clear a list that was loaded before.
package users
