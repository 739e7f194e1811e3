// Package metrics implements cache outcome counters backed by Prometheus,
// plus a no-op default for embedders without a metrics registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/larder/internal/core/ports"
)

var (
	_ ports.Metrics = (*Prometheus)(nil)
	_ ports.Metrics = (*Noop)(nil)
)

// Prometheus counts cache outcomes in a Prometheus registry.
type Prometheus struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
	failures  prometheus.Counter
}

// NewPrometheus creates the counters and registers them with the given
// registerer.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	m := &Prometheus{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "larder_cache_hits_total",
			Help: "Cache hits served, by gateway.",
		}, []string{"gateway"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "larder_cache_misses_total",
			Help: "Cache misses falling through to the collaborator, by gateway.",
		}, []string{"gateway"}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "larder_evictions_total",
			Help: "Entries evicted by the garbage collector, by reason.",
		}, []string{"reason"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "larder_checksum_failures_total",
			Help: "Cache entries purged after an integrity check failure.",
		}),
	}
	for _, c := range []prometheus.Collector{m.hits, m.misses, m.evictions, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CacheHit records a served cache hit.
func (m *Prometheus) CacheHit(gateway string) {
	m.hits.WithLabelValues(gateway).Inc()
}

// CacheMiss records a fall-through.
func (m *Prometheus) CacheMiss(gateway string) {
	m.misses.WithLabelValues(gateway).Inc()
}

// Eviction records an evicted entry.
func (m *Prometheus) Eviction(reason string) {
	m.evictions.WithLabelValues(reason).Inc()
}

// ChecksumFailure records an integrity check failure.
func (m *Prometheus) ChecksumFailure() {
	m.failures.Inc()
}

// Noop discards all counts.
type Noop struct{}

// NewNoop creates a Noop metrics sink.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) CacheHit(string)  {}
func (*Noop) CacheMiss(string) {}
func (*Noop) Eviction(string)  {}
func (*Noop) ChecksumFailure() {}
