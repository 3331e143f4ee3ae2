// Package metrics exports fetcher statistics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/motoki317/fetchstate"
)

// Source is implemented by *fetchstate.Fetcher of any payload type.
type Source interface {
	Stats() fetchstate.Stats
	State() fetchstate.State
}

// Collector reads the statistics of a single fetcher on every scrape.
type Collector struct {
	src Source

	fetches       *prometheus.Desc
	successes     *prometheus.Desc
	failures      *prometheus.Desc
	cancellations *prometheus.Desc
	cacheHits     *prometheus.Desc
	busy          *prometheus.Desc
	cacheSize     *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for src. Metric names are prefixed by namespace,
// and every sample carries a "fetcher" label set to name.
func NewCollector(namespace, name string, src Source) *Collector {
	constLabels := prometheus.Labels{"fetcher": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", metric), help, nil, constLabels)
	}
	return &Collector{
		src:           src,
		fetches:       desc("fetches_total", "Number of started fetches."),
		successes:     desc("fetch_successes_total", "Number of fetches that succeeded, including cache hits."),
		failures:      desc("fetch_failures_total", "Number of fetches that failed."),
		cancellations: desc("fetch_cancellations_total", "Number of fetches cancelled by the caller."),
		cacheHits:     desc("fetch_cache_hits_total", "Number of fetches served from the response cache."),
		busy:          desc("fetch_busy", "Whether a fetch is in flight (1) or not (0)."),
		cacheSize:     desc("fetch_cache_size", "Number of cached responses."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.fetches
	ch <- c.successes
	ch <- c.failures
	ch <- c.cancellations
	ch <- c.cacheHits
	ch <- c.busy
	ch <- c.cacheSize
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.src.Stats()
	busy := 0.0
	if c.src.State().Busy {
		busy = 1
	}

	ch <- prometheus.MustNewConstMetric(c.fetches, prometheus.CounterValue, float64(stats.Fetches))
	ch <- prometheus.MustNewConstMetric(c.successes, prometheus.CounterValue, float64(stats.Successes))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(stats.Failures))
	ch <- prometheus.MustNewConstMetric(c.cancellations, prometheus.CounterValue, float64(stats.Cancellations))
	ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(stats.CacheHits))
	ch <- prometheus.MustNewConstMetric(c.busy, prometheus.GaugeValue, busy)
	ch <- prometheus.MustNewConstMetric(c.cacheSize, prometheus.GaugeValue, float64(stats.Size))
}
