package fetchstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// State is the observable request state of a Fetcher.
type State struct {
	// Busy is true while a fetch is in flight.
	Busy bool
	// LastError is the user-facing message of the last failed fetch, or empty if the last fetch succeeded
	// (or none has finished yet).
	LastError string
}

// New creates a new fetcher retrieving payloads of type T through getter.
// Response bodies are decoded as JSON unless WithDecoder is given.
func New[T any](getter Getter, options ...Option) (*Fetcher[T], error) {
	if getter == nil {
		return nil, errors.New("getter cannot be nil")
	}

	config := defaultConfig()
	for _, option := range options {
		option(&config)
	}

	if config.errorMessage == "" {
		return nil, errors.New("error message cannot be empty")
	}
	var decode Decoder[T] = JSONDecoder[T]
	if config.decoder != nil {
		d, ok := config.decoder.(Decoder[T])
		if !ok {
			return nil, fmt.Errorf("decoder %T does not decode into %T", config.decoder, *new(T))
		}
		decode = d
	}

	var b backend[string, cached[T]]
	if config.cacheEnabled {
		if config.freshFor < 0 {
			return nil, errors.New("freshFor needs to be non-negative")
		}
		switch config.backend {
		case cacheBackendMap:
			if config.capacity < 0 {
				return nil, errors.New("capacity needs to be non-negative for map cache")
			}
			b = newMapBackend[string, cached[T]](config.capacity)
		case cacheBackendLRU:
			if config.capacity <= 0 {
				return nil, errors.New("capacity needs to be greater than 0 for LRU cache")
			}
			b = newLRUBackend[string, cached[T]](config.capacity)
		default:
			return nil, errors.New("unknown cache backend")
		}
	}

	return &Fetcher[T]{
		getter:   getter,
		decode:   decode,
		validate: config.validate,
		message:  config.errorMessage,
		hooks:    config.hooks,
		cache:    b,
		freshFor: config.freshFor,
	}, nil
}

// Fetcher wraps retrieval of a resource with loading and error state.
//
// Each call to Fetch or FetchAsync runs one lifecycle:
// Busy is set, the resource is retrieved and decoded, LastError is cleared on success or set to a fixed message
// on failure, and Busy is cleared again on every exit path.
// A Fetcher does not retry and does not log.
//
// All methods are safe to be called from multiple goroutines, but a Fetcher tracks a single lifecycle:
// when calls overlap, the first one to finish clears Busy.
type Fetcher[T any] struct {
	getter   Getter
	decode   Decoder[T]
	validate *validator.Validate
	message  string
	hooks    []func(State)

	notifyMu sync.Mutex // notifyMu orders state transitions with their hook calls
	mu       sync.Mutex // mu protects state, stats and cache
	state    State
	stats    CallStats
	cache    backend[string, cached[T]] // nil if the response cache is disabled
	freshFor time.Duration
}

// Fetch retrieves the resource identified by locator and returns the decoded payload.
//
// On failure, LastError is set to the fixed user-facing message and a *FetchError wrapping the cause is returned.
// If ctx is done before the retrieval returns, the fetch counts as cancelled: LastError is left untouched
// and ctx.Err() is returned.
func (f *Fetcher[T]) Fetch(ctx context.Context, locator string) (T, error) {
	f.begin()
	return f.run(ctx, locator)
}

// FetchAsync is similar to Fetch, but runs the retrieval in a new goroutine.
// Busy is set before FetchAsync returns. The returned channel receives exactly one Result and is then closed;
// by the time the Result is received, Busy has already been cleared.
func (f *Fetcher[T]) FetchAsync(ctx context.Context, locator string) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	f.begin()
	go func() {
		defer close(ch)
		v, err := f.run(ctx, locator)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// State returns a snapshot of the current state.
func (f *Fetcher[T]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Busy reports whether a fetch is in flight.
func (f *Fetcher[T]) Busy() bool {
	return f.State().Busy
}

// LastError returns the user-facing message of the last failed fetch, or an empty string.
func (f *Fetcher[T]) LastError() string {
	return f.State().LastError
}

// Forget deletes the cached response for locator, if any.
// The next fetch of locator will call the Getter.
func (f *Fetcher[T]) Forget(locator string) {
	f.mu.Lock()
	if f.cache != nil {
		f.cache.Delete(locator)
	}
	f.mu.Unlock()
}

// Purge deletes all cached responses.
func (f *Fetcher[T]) Purge() {
	f.mu.Lock()
	if f.cache != nil {
		f.cache.Purge()
	}
	f.mu.Unlock()
}

func (f *Fetcher[T]) run(ctx context.Context, locator string) (T, error) {
	defer f.end()

	var zero T
	// Record time *just before* the Getter is called - a cached payload is never younger than the resource
	t0 := time.Now()
	v, hit, err := f.retrieve(ctx, locator)

	// Unsubscribed: neither the success nor the failure branch runs
	if ctxErr := ctx.Err(); ctxErr != nil {
		f.cancelled()
		return zero, ctxErr
	}
	if err != nil {
		f.failed()
		return zero, &FetchError{Locator: locator, Message: f.message, Err: err}
	}
	f.succeeded(locator, v, t0, hit)
	return v, nil
}

func (f *Fetcher[T]) retrieve(ctx context.Context, locator string) (T, bool, error) {
	if v, ok := f.lookup(locator); ok {
		return v, true, nil
	}

	var zero T
	data, err := f.getter.Get(ctx, locator)
	if err != nil {
		return zero, false, err
	}
	v, err := f.decode(data)
	if err != nil {
		return zero, false, fmt.Errorf("decode: %w", err)
	}
	if f.validate != nil {
		if err := validatePayload(f.validate, v); err != nil {
			return zero, false, fmt.Errorf("validate: %w", err)
		}
	}
	return v, false, nil
}

func (f *Fetcher[T]) lookup(locator string) (T, bool) {
	var zero T
	if f.cache == nil {
		return zero, false
	}

	now := time.Now()
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cache.Get(locator)
	if !ok {
		return zero, false
	}
	if !c.isFresh(now, f.freshFor) {
		f.cache.Delete(locator)
		return zero, false
	}
	return c.v, true
}

func (f *Fetcher[T]) begin() {
	f.notifyMu.Lock()
	defer f.notifyMu.Unlock()
	f.mu.Lock()
	f.stats.Fetches++
	f.state.Busy = true
	st := f.state
	f.mu.Unlock()
	f.notify(st)
}

func (f *Fetcher[T]) succeeded(locator string, v T, t time.Time, hit bool) {
	f.notifyMu.Lock()
	defer f.notifyMu.Unlock()
	f.mu.Lock()
	f.stats.Successes++
	if hit {
		f.stats.CacheHits++
	} else if f.cache != nil {
		f.cache.Set(locator, cached[T]{v: v, t: t})
	}
	f.state.LastError = ""
	st := f.state
	f.mu.Unlock()
	f.notify(st)
}

func (f *Fetcher[T]) failed() {
	f.notifyMu.Lock()
	defer f.notifyMu.Unlock()
	f.mu.Lock()
	f.stats.Failures++
	f.state.LastError = f.message // overwrite, never append
	st := f.state
	f.mu.Unlock()
	f.notify(st)
}

func (f *Fetcher[T]) cancelled() {
	f.mu.Lock()
	f.stats.Cancellations++
	f.mu.Unlock()
}

func (f *Fetcher[T]) end() {
	f.notifyMu.Lock()
	defer f.notifyMu.Unlock()
	f.mu.Lock()
	f.state.Busy = false
	st := f.state
	f.mu.Unlock()
	f.notify(st)
}

func (f *Fetcher[T]) notify(st State) {
	for _, hook := range f.hooks {
		hook(st)
	}
}
