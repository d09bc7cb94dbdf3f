package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SettlementMetrics records outcomes of the payment settlement path.
type SettlementMetrics struct {
	duration    *prometheus.HistogramVec
	settlements *prometheus.CounterVec
	stockSkips  prometheus.Counter
}

// NewSettlementMetrics registers the settlement metrics on the provided registerer.
func NewSettlementMetrics(reg prometheus.Registerer) *SettlementMetrics {
	if reg == nil {
		return &SettlementMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "settlement_duration_seconds",
		Help:    "Duration of order settlement attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	settlements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlements_total",
		Help: "Settlement attempts by charged method and outcome.",
	}, []string{"method", "outcome"})
	stockSkips := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlement_stock_skips_total",
		Help: "Settlements that completed without a stock decrement.",
	})
	reg.MustRegister(duration, settlements, stockSkips)
	return &SettlementMetrics{
		duration:    duration,
		settlements: settlements,
		stockSkips:  stockSkips,
	}
}

// ObserveDuration records how long a settlement attempt took.
func (s *SettlementMetrics) ObserveDuration(method string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(method)).Observe(duration.Seconds())
}

// IncSettlement counts one settlement attempt with its outcome.
func (s *SettlementMetrics) IncSettlement(method, outcome string) {
	if s == nil || s.settlements == nil {
		return
	}
	s.settlements.WithLabelValues(normalizeLabel(method), normalizeLabel(outcome)).Inc()
}

// IncStockSkip counts a settlement that proceeded past exhausted stock.
func (s *SettlementMetrics) IncStockSkip() {
	if s == nil || s.stockSkips == nil {
		return
	}
	s.stockSkips.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
