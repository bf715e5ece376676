package alloc

import "github.com/prometheus/client_golang/prometheus"

// Collector exports Metered and Arena statistics to Prometheus. Either
// source may be nil.
type Collector struct {
	metered *Metered
	arena   *Arena

	liveBytes  *prometheus.Desc
	peakBytes  *prometheus.Desc
	allocs     *prometheus.Desc
	frees      *prometheus.Desc
	failures   *prometheus.Desc
	arenaUsed  *prometheus.Desc
	arenaCap   *prometheus.Desc
	arenaChunk *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector for m and a. The arena is read without
// locking, so register it only when scrapes cannot race with allocations,
// or pass nil and meter the arena instead.
func NewCollector(namespace string, m *Metered, a *Arena) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "alloc", name), help, nil, nil)
	}
	return &Collector{
		metered:    m,
		arena:      a,
		liveBytes:  desc("live_bytes", "Bytes currently allocated."),
		peakBytes:  desc("peak_bytes", "Highest number of bytes allocated at once."),
		allocs:     desc("allocations_total", "Successful allocations."),
		frees:      desc("frees_total", "Blocks returned to the allocator."),
		failures:   desc("failures_total", "Allocations refused, including limit denials."),
		arenaUsed:  desc("arena_used_bytes", "Bytes handed out by the arena."),
		arenaCap:   desc("arena_capacity_bytes", "Total arena chunk capacity."),
		arenaChunk: desc("arena_chunks", "Number of arena chunks."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	if c.metered != nil {
		ch <- c.liveBytes
		ch <- c.peakBytes
		ch <- c.allocs
		ch <- c.frees
		ch <- c.failures
	}
	if c.arena != nil {
		ch <- c.arenaUsed
		ch <- c.arenaCap
		ch <- c.arenaChunk
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.metered != nil {
		s := c.metered.Stats()
		ch <- prometheus.MustNewConstMetric(c.liveBytes, prometheus.GaugeValue, float64(s.LiveBytes))
		ch <- prometheus.MustNewConstMetric(c.peakBytes, prometheus.GaugeValue, float64(s.PeakBytes))
		ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(s.Allocs))
		ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue, float64(s.Frees))
		ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures))
	}
	if c.arena != nil {
		s := c.arena.Stats()
		ch <- prometheus.MustNewConstMetric(c.arenaUsed, prometheus.GaugeValue, float64(s.SizeInUse))
		ch <- prometheus.MustNewConstMetric(c.arenaCap, prometheus.GaugeValue, float64(s.Capacity))
		ch <- prometheus.MustNewConstMetric(c.arenaChunk, prometheus.GaugeValue, float64(s.NumChunks))
	}
}
