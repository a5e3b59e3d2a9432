package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Ledger holds the prometheus collectors of the accounting core.
// A nil *Ledger is valid and records nothing.
type Ledger struct {
	entriesPosted   *prometheus.CounterVec
	entriesReversed prometheus.Counter
	postingFailures *prometheus.CounterVec
	sequenceIssued  prometheus.Counter
	balanceDrift    prometheus.Gauge
}

// NewLedger creates the collectors and registers them with reg.
func NewLedger(reg prometheus.Registerer) *Ledger {
	m := &Ledger{
		entriesPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "entries_posted_total",
			Help:      "Journal entries posted, by entry type.",
		}, []string{"entry_type"}),
		entriesReversed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "entries_reversed_total",
			Help:      "Journal entries reversed.",
		}),
		postingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "posting_failures_total",
			Help:      "Rejected postings, by reason.",
		}, []string{"reason"}),
		sequenceIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "sequence_values_issued_total",
			Help:      "Sequence numbers handed out.",
		}),
		balanceDrift: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ledger",
			Name:      "balance_drift_accounts",
			Help:      "Accounts whose cached balance differed at the last verify or rebuild.",
		}),
	}
	reg.MustRegister(m.entriesPosted, m.entriesReversed, m.postingFailures, m.sequenceIssued, m.balanceDrift)
	return m
}

func (m *Ledger) EntryPosted(entryType string) {
	if m == nil {
		return
	}
	m.entriesPosted.WithLabelValues(entryType).Inc()
}

func (m *Ledger) EntryReversed() {
	if m == nil {
		return
	}
	m.entriesReversed.Inc()
}

// PostingFailed counts a rejected posting. reason is a short fixed label.
func (m *Ledger) PostingFailed(reason string) {
	if m == nil {
		return
	}
	m.postingFailures.WithLabelValues(reason).Inc()
}

func (m *Ledger) SequenceIssued() {
	if m == nil {
		return
	}
	m.sequenceIssued.Inc()
}

func (m *Ledger) BalanceDrift(accounts int) {
	if m == nil {
		return
	}
	m.balanceDrift.Set(float64(accounts))
}
