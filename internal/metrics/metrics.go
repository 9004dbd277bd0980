package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the purchase-flow collectors. A nil *Metrics is a no-op.
type Metrics struct {
	// CheckoutsTotal tracks created checkouts by effective provider
	CheckoutsTotal *prometheus.CounterVec

	// CheckoutFallbacksTotal tracks checkouts degraded from stripe to mock
	CheckoutFallbacksTotal prometheus.Counter

	// ConfirmationsTotal tracks confirmation outcomes
	ConfirmationsTotal *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CheckoutsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prepaid_checkouts_total",
				Help: "Total number of prepaid card checkouts",
			},
			[]string{"provider"},
		),
		CheckoutFallbacksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "prepaid_checkout_fallbacks_total",
				Help: "Total number of checkouts that fell back from stripe to mock",
			},
		),
		ConfirmationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prepaid_confirmations_total",
				Help: "Total number of payment confirmations",
			},
			[]string{"provider", "result"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.CheckoutsTotal, m.CheckoutFallbacksTotal, m.ConfirmationsTotal)
	}
	return m
}

func (m *Metrics) RecordCheckout(provider string) {
	if m == nil {
		return
	}
	m.CheckoutsTotal.WithLabelValues(provider).Inc()
}

func (m *Metrics) RecordFallback() {
	if m == nil {
		return
	}
	m.CheckoutFallbacksTotal.Inc()
}

func (m *Metrics) RecordConfirmation(provider, result string) {
	if m == nil {
		return
	}
	m.ConfirmationsTotal.WithLabelValues(provider, result).Inc()
}
