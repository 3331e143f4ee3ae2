package fetchstate

// Result is the outcome of a single fetch, delivered on the channel returned by (*Fetcher).FetchAsync.
// Exactly one of Value and Err is meaningful: Err is nil on success.
type Result[T any] struct {
	Value T
	Err   error
}

// Unwrap returns the result as a value and error pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// OK reports whether the fetch succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}
