package fetchstate

import (
	"time"
)

// cached is a successful payload kept in the response cache.
// It is "fresh" for the configured freshFor duration, and ignored afterwards.
type cached[T any] struct {
	v T
	t time.Time // the time the payload was retrieved
}

func (c *cached[T]) isFresh(now time.Time, freshFor time.Duration) bool {
	return now.Before(c.t.Add(freshFor))
}
