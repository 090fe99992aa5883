package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PaymentInitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paymux",
			Subsystem: "payments",
			Name:      "inits_total",
			Help:      "Webpay transactions opened, by tenant",
		},
		[]string{"tenant_id"},
	)

	PaymentCommitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paymux",
			Subsystem: "payments",
			Name:      "commits_total",
			Help:      "Commit callbacks finalized, by tenant and outcome",
		},
		[]string{"tenant_id", "outcome"},
	)
)

func init() {
	Registry.MustRegister(PaymentInitsTotal, PaymentCommitsTotal)
}
