package rollup

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the sequencer's prometheus instrumentation.
type Metrics struct {
	TxExecuted prometheus.Counter
	TxFailures prometheus.Counter
}

// NewMetrics constructs a fresh, unregistered Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		TxExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "interliquid",
			Subsystem: "sequencer",
			Name:      "tx_executed_total",
			Help:      "Total number of transactions successfully executed by the sequencer.",
		}),
		TxFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "interliquid",
			Subsystem: "sequencer",
			Name:      "tx_failures_total",
			Help:      "Total number of transactions that failed execution and were skipped.",
		}),
	}
}

// MustRegister registers every metric with reg, panicking on a duplicate
// registration (the same contract prometheus.MustRegister itself offers).
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.TxExecuted, m.TxFailures)
}
