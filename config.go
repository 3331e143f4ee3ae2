package fetchstate

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultErrorMessage is the user-facing message stored in LastError after a failed fetch.
const DefaultErrorMessage = "Failed to load data. Please try again."

type Option func(c *fetcherConfig)

type fetcherConfig struct {
	errorMessage string
	decoder      any // Decoder[T], checked against the Fetcher's type parameter in New
	validate     *validator.Validate
	hooks        []func(State)

	cacheEnabled bool
	freshFor     time.Duration
	backend      cacheBackendType
	capacity     int
}

type cacheBackendType int

const (
	cacheBackendMap cacheBackendType = iota
	cacheBackendLRU
)

func defaultConfig() fetcherConfig {
	return fetcherConfig{
		errorMessage: DefaultErrorMessage,
		backend:      cacheBackendMap,
		capacity:     0,
	}
}

// WithErrorMessage overrides the fixed message stored in LastError after a failure.
// The message is shown to end users as is; the cause of the failure is never included.
func WithErrorMessage(msg string) Option {
	return func(c *fetcherConfig) {
		c.errorMessage = msg
	}
}

// WithDecoder sets the function used to turn a response body into the payload.
// T needs to match the type parameter of the Fetcher being built, otherwise New returns an error.
// Defaults to JSONDecoder.
func WithDecoder[T any](fn Decoder[T]) Option {
	return func(c *fetcherConfig) {
		c.decoder = fn
	}
}

// WithValidation validates every decoded payload with a default validator instance,
// using the `validate` struct tags of the payload type.
func WithValidation() Option {
	return func(c *fetcherConfig) {
		c.validate = validator.New(validator.WithRequiredStructEnabled())
	}
}

// WithValidator is similar to WithValidation, but uses the given validator instance,
// e.g. one with custom validations registered.
func WithValidator(v *validator.Validate) Option {
	return func(c *fetcherConfig) {
		c.validate = v
	}
}

// WithStateHook registers fn to be called with a snapshot of the State after every state transition.
// Hooks are called in registration order, without holding the lock that guards the State,
// so a hook may read State or Stats. Transitions of overlapping fetches are delivered one at a time
// in the order they happened; a hook must not start a fetch on the same Fetcher.
func WithStateHook(fn func(State)) Option {
	return func(c *fetcherConfig) {
		c.hooks = append(c.hooks, fn)
	}
}

// WithCache enables the response cache.
// A successful payload is reused for the given freshFor duration for the same locator, without calling the Getter.
// Failures are never cached.
func WithCache(freshFor time.Duration) Option {
	return func(c *fetcherConfig) {
		c.cacheEnabled = true
		c.freshFor = freshFor
	}
}

// WithCapacity sets the response cache's capacity.
func WithCapacity(capacity int) Option {
	return func(c *fetcherConfig) {
		c.capacity = capacity
	}
}

// WithMapBackend specifies to use the built-in map for cached responses (the default).
// Note that the map backend does not evict old responses. If you fetch from many distinct locators,
// consider using WithLRUBackend.
func WithMapBackend() Option {
	return func(c *fetcherConfig) {
		c.backend = cacheBackendMap
	}
}

// WithLRUBackend specifies to use LRU for cached responses.
// Capacity needs to be greater than 0.
func WithLRUBackend(capacity int) Option {
	return func(c *fetcherConfig) {
		c.backend = cacheBackendLRU
		c.capacity = capacity
	}
}
