package engine

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector observes engine activity. Implementations must be
// safe for concurrent use since LookupBatch scores rows in parallel.
type MetricsCollector interface {
	IncBuild(rows int)
	IncLookup()
	IncExactHit()
	ObserveCandidates(n int)
}

// NoopMetricsCollector discards every observation.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) IncBuild(int)           {}
func (NoopMetricsCollector) IncLookup()             {}
func (NoopMetricsCollector) IncExactHit()           {}
func (NoopMetricsCollector) ObserveCandidates(int)  {}

// BasicMetricsCollector accumulates counters in memory using
// sync/atomic, following the teacher's own atomic-counter
// MetricsCollector implementation.
type BasicMetricsCollector struct {
	builtRows       atomic.Int64
	lookups         atomic.Int64
	exactHits       atomic.Int64
	totalCandidates atomic.Int64
}

func (m *BasicMetricsCollector) IncBuild(rows int) { m.builtRows.Add(int64(rows)) }
func (m *BasicMetricsCollector) IncLookup()        { m.lookups.Add(1) }
func (m *BasicMetricsCollector) IncExactHit()      { m.exactHits.Add(1) }
func (m *BasicMetricsCollector) ObserveCandidates(n int) {
	m.totalCandidates.Add(int64(n))
}

// Snapshot returns the current counter values.
func (m *BasicMetricsCollector) Snapshot() (builtRows, lookups, exactHits, totalCandidates int64) {
	return m.builtRows.Load(), m.lookups.Load(), m.exactHits.Load(), m.totalCandidates.Load()
}

// PrometheusMetricsCollector publishes the same counters through
// client_golang, for engines embedded in a service that already exposes
// a /metrics endpoint.
type PrometheusMetricsCollector struct {
	builtRows       prometheus.Counter
	lookups         prometheus.Counter
	exactHits       prometheus.Counter
	candidatesTotal prometheus.Counter
}

// NewPrometheusMetricsCollector registers its counters on reg and
// returns a collector backed by them.
func NewPrometheusMetricsCollector(reg prometheus.Registerer) *PrometheusMetricsCollector {
	c := &PrometheusMetricsCollector{
		builtRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fuzzylink",
			Name:      "built_rows_total",
			Help:      "Number of reference rows indexed by Build.",
		}),
		lookups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fuzzylink",
			Name:      "lookups_total",
			Help:      "Number of target rows scored by Lookup.",
		}),
		exactHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fuzzylink",
			Name:      "exact_hits_total",
			Help:      "Number of lookups that hit the exact-key fast path.",
		}),
		candidatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fuzzylink",
			Name:      "candidates_total",
			Help:      "Sum of candidate counts observed across all lookups.",
		}),
	}

	reg.MustRegister(c.builtRows, c.lookups, c.exactHits, c.candidatesTotal)

	return c
}

func (c *PrometheusMetricsCollector) IncBuild(rows int) { c.builtRows.Add(float64(rows)) }
func (c *PrometheusMetricsCollector) IncLookup()        { c.lookups.Inc() }
func (c *PrometheusMetricsCollector) IncExactHit()      { c.exactHits.Inc() }
func (c *PrometheusMetricsCollector) ObserveCandidates(n int) {
	c.candidatesTotal.Add(float64(n))
}
