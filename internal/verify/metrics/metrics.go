package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification engine.
type Metrics struct {
	// Terminal outcomes by region and outcome
	VerificationOutcome *prometheus.CounterVec

	// Board portal round-trip latencies by region
	LookupLatency *prometheus.HistogramVec

	// Full verification run latency, retries included
	VerifyLatency prometheus.Histogram

	// Transient-failure retries by region
	Retries *prometheus.CounterVec
}

// New creates a new Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		VerificationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "licensure_verify_outcomes_total",
			Help: "Total terminal verification outcomes by region and outcome",
		}, []string{"region", "outcome"}),

		LookupLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "licensure_verify_lookup_duration_seconds",
			Help:    "Duration of licensing board portal round trips by region",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"region"}),

		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "licensure_verify_run_duration_seconds",
			Help:    "Duration of full verification runs including retries",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		Retries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "licensure_verify_retries_total",
			Help: "Total transient-failure retries by region",
		}, []string{"region"}),
	}
}

// IncrementOutcome records a terminal verification outcome.
func (m *Metrics) IncrementOutcome(region, outcome string) {
	if m != nil {
		m.VerificationOutcome.WithLabelValues(region, outcome).Inc()
	}
}

// ObserveLookupLatency records the duration of one board portal round trip.
func (m *Metrics) ObserveLookupLatency(region string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(region).Observe(d.Seconds())
	}
}

// ObserveVerifyLatency records the total verification run duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}

// IncrementRetry records a retry after a transient lookup failure.
func (m *Metrics) IncrementRetry(region string) {
	if m != nil {
		m.Retries.WithLabelValues(region).Inc()
	}
}
