package avisha

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Command outcomes recorded on avisha_commands_total.
const (
	outcomeApplied  = "applied"  // The ledger changed as requested.
	outcomeRejected = "rejected" // Validation failed and errors were queued.
	outcomeNoop     = "noop"     // Nothing to do, e.g. a duplicate lease.
)

// Metrics holds the Prometheus collectors of a Controller.
type Metrics struct {
	CommandsTotal *prometheus.CounterVec
	StoreFailures prometheus.Counter
}

// NewMetrics creates the controller collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avisha_commands_total",
				Help: "Total number of dispatched commands by outcome",
			},
			[]string{"command", "outcome"},
		),
		StoreFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "avisha_store_failures_total",
				Help: "Total number of failed ledger writes",
			},
		),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.CommandsTotal, m.StoreFailures} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering metrics : %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) recordCommand(command, outcome string) {
	m.CommandsTotal.WithLabelValues(command, outcome).Inc()
}

func (m *Metrics) recordStoreFailure() {
	m.StoreFailures.Inc()
}
