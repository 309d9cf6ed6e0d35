package handlers

import "github.com/prometheus/client_golang/prometheus"

// Request outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeUnauthorized = "unauthorized"
	OutcomeBadRequest   = "bad_request"
	OutcomeError        = "error"
)

// Metrics counts handled requests by operation and outcome.
type Metrics struct {
	Requests *prometheus.CounterVec
}

// NewMetrics creates and registers the handler metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timetrack_requests_total",
			Help: "Sync service requests by operation and outcome.",
		}, []string{"op", "outcome"}),
	}
	reg.MustRegister(m.Requests)
	return m
}

func (m *Metrics) observe(op, outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(op, outcome).Inc()
}
