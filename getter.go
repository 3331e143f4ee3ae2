package fetchstate

import (
	"context"
)

// Getter retrieves the raw representation of the resource identified by locator.
// Implementations report non-success responses as errors.
// See the transport package for an HTTP implementation.
type Getter interface {
	Get(ctx context.Context, locator string) ([]byte, error)
}

// GetterFunc adapts an ordinary function to the Getter interface.
type GetterFunc func(ctx context.Context, locator string) ([]byte, error)

func (fn GetterFunc) Get(ctx context.Context, locator string) ([]byte, error) {
	return fn(ctx, locator)
}
