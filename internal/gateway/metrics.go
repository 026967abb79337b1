package gateway

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts gateway responses per operation and envelope code.
type Metrics struct {
	responses *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billplatform",
			Subsystem: "gateway",
			Name:      "responses_total",
			Help:      "Gateway responses by operation and envelope code.",
		}, []string{"operation", "code"}),
	}
	reg.MustRegister(m.responses)
	return m
}

func (m *Metrics) observe(operation string, code int) {
	if m == nil {
		return
	}
	m.responses.WithLabelValues(operation, strconv.Itoa(code)).Inc()
}
