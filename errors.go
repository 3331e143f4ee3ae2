package fetchstate

import (
	"errors"
	"fmt"
)

// ErrFetchFailed matches every *FetchError via errors.Is.
var ErrFetchFailed = errors.New("fetch failed")

// FetchError is returned by Fetch when the retrieval failed.
// Transport errors, non-success statuses, decoding and validation errors are all reported as FetchError;
// the original error is available through errors.Unwrap / errors.As.
type FetchError struct {
	// Locator is the resource locator passed to Fetch.
	Locator string
	// Message is the user-facing message that was stored in LastError.
	Message string
	// Err is the cause.
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
