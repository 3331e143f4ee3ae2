// Package fetchstate wraps retrieval of a remote resource with the loading and error state a view needs to render.
//
// A Fetcher[T] exposes two fields, Busy and LastError. Every fetch sets Busy before the Getter is called,
// clears LastError on success or overwrites it with a fixed user-facing message on failure,
// and clears Busy on every exit path, including cancellation through the context.
// The cause of a failure is never stored in LastError; it is returned to the caller wrapped in a *FetchError.
//
// Optionally, successful payloads can be validated with go-playground/validator struct tags
// and kept in a response cache (map or LRU backend) for a fixed duration.
package fetchstate
