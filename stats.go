package fetchstate

import (
	"fmt"
)

type CallStats struct {
	// Fetches is the number of started fetch lifecycles.
	Fetches uint64
	// Successes is the number of fetches that ended in the success branch, including cache hits.
	Successes uint64
	// Failures is the number of fetches that ended in the failure branch.
	Failures uint64
	// Cancellations is the number of fetches whose context was done before they finished.
	Cancellations uint64
	// CacheHits is the number of fetches served from the response cache without calling the Getter.
	CacheHits uint64
}

type SizeStats struct {
	// Size is the current number of cached responses.
	Size int
	// Capacity is the maximum number of cached responses, -1 if unbounded and 0 if the cache is disabled.
	Capacity int
}

// Stats represents fetcher metrics.
type Stats struct {
	CallStats
	SizeStats
}

// String returns formatted string.
func (s Stats) String() string {
	return fmt.Sprintf(
		"Fetches: %d, Successes: %d, Failures: %d, Cancellations: %d, CacheHits: %d, Success Ratio: %f, Size: %d, Capacity: %d",
		s.Fetches, s.Successes, s.Failures, s.Cancellations, s.CacheHits,
		s.SuccessRatio(),
		s.Size, s.Capacity,
	)
}

// SuccessRatio returns the ratio of successes among fetches that reached a terminal branch.
// Cancelled fetches are not counted.
func (s Stats) SuccessRatio() float64 {
	total := s.Successes + s.Failures
	if total == 0 {
		return 0
	}
	return float64(s.Successes) / float64(total)
}

// Stats returns fetcher metrics.
func (f *Fetcher[T]) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := Stats{CallStats: f.stats}
	if f.cache != nil {
		st.SizeStats = SizeStats{
			Size:     f.cache.Size(),
			Capacity: f.cache.Capacity(),
		}
	}
	return st
}
