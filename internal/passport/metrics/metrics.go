package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for passport issuance.
// Tracks lifecycle counts and issuance latency.
type Metrics struct {
	PassportsIssued  prometheus.Counter
	IssueFailures    prometheus.Counter
	PassportsRevoked prometheus.Counter
	StampsAdded      prometheus.Counter
	IssueDuration    prometheus.Histogram

	factory promauto.Factory
}

// New creates passport metrics registered with reg. A nil reg creates
// unregistered collectors, which keeps repeated construction in tests safe.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PassportsIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "passport_issued_total",
			Help: "Total number of passports issued",
		}),
		IssueFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "passport_issue_failures_total",
			Help: "Total number of issuance attempts rejected by validation",
		}),
		PassportsRevoked: factory.NewCounter(prometheus.CounterOpts{
			Name: "passport_revoked_total",
			Help: "Total number of passports revoked",
		}),
		StampsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "passport_stamps_added_total",
			Help: "Total number of travel stamps appended",
		}),
		IssueDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "passport_issue_duration_seconds",
			Help:    "Duration of Issue operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		factory: factory,
	}
}

// RegisterRegistrySize exposes the current registry size as a gauge sampled
// at scrape time.
func (m *Metrics) RegisterRegistrySize(size func() float64) prometheus.GaugeFunc {
	return m.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "passport_registry_size",
		Help: "Number of passports currently held in the registry",
	}, size)
}

func (m *Metrics) IncrementIssued() {
	m.PassportsIssued.Inc()
}

func (m *Metrics) IncrementIssueFailures() {
	m.IssueFailures.Inc()
}

func (m *Metrics) IncrementRevoked() {
	m.PassportsRevoked.Inc()
}

func (m *Metrics) IncrementStampsAdded() {
	m.StampsAdded.Inc()
}

// ObserveIssue records the duration of an Issue operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveIssue(start time.Time) {
	m.IssueDuration.Observe(time.Since(start).Seconds())
}
