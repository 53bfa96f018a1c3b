package sqlpager

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	kindData      = "data"
	kindCount     = "count"
	kindPaginated = "paginated"
)

// Metrics collects Prometheus metrics of executed statements. A nil *Metrics
// records nothing.
type Metrics struct {
	queries        *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	failures       *prometheus.CounterVec
	countFallbacks prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sqlpager",
			Name:      "queries_total",
			Help:      "Total number of executed statements by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sqlpager",
			Name:      "query_duration_seconds",
			Help:      "Statement execution duration in seconds by kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sqlpager",
			Name:      "failures_total",
			Help:      "Total number of failed paginatable calls by reason.",
		}, []string{"reason"}),
		countFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sqlpager",
			Name:      "count_fallbacks_total",
			Help:      "Total number of count queries whose failure was replaced with zero.",
		}),
	}

	for _, c := range []prometheus.Collector{m.queries, m.duration, m.failures, m.countFallbacks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observeQuery(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.queries.WithLabelValues(kind).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) observeFailure(err error) {
	if m == nil || err == nil {
		return
	}

	reason := ErrorCode(err)
	if reason == "" {
		reason = "other"
	}

	m.failures.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeCountFallback() {
	if m == nil {
		return
	}

	m.countFallbacks.Inc()
}
