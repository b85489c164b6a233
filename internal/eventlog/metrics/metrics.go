package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the event log. All methods
// tolerate a nil receiver so tests can run services without a registry.
type Metrics struct {
	AppendsTotal           prometheus.Counter
	ConflictsTotal         prometheus.Counter
	ValidationRejectsTotal prometheus.Counter
	LookupDuration         *prometheus.HistogramVec
}

// New creates and registers all event log metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AppendsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stripelog_events_appended_total",
			Help: "Total number of event records appended to the log",
		}),
		ConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stripelog_append_conflicts_total",
			Help: "Total number of appends rejected as duplicate event ids",
		}),
		ValidationRejectsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stripelog_validation_rejects_total",
			Help: "Total number of records rejected before reaching the store",
		}),
		LookupDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stripelog_lookup_duration_seconds",
			Help:    "Latency of indexed lookups against the event log",
			Buckets: prometheus.DefBuckets,
		}, []string{"index"}),
	}
}

func (m *Metrics) RecordAppend() {
	if m == nil {
		return
	}
	m.AppendsTotal.Inc()
}

func (m *Metrics) RecordConflict() {
	if m == nil {
		return
	}
	m.ConflictsTotal.Inc()
}

func (m *Metrics) RecordValidationReject() {
	if m == nil {
		return
	}
	m.ValidationRejectsTotal.Inc()
}

func (m *Metrics) ObserveLookup(index string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.LookupDuration.WithLabelValues(index).Observe(elapsed.Seconds())
}
