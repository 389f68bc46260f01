package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "order_service"

// BookingMetrics records booking outcomes on its own registry.
type BookingMetrics struct {
	registry           *prometheus.Registry
	outcomes           *prometheus.CounterVec
	lockContended      prometheus.Counter
	reservationMissing *prometheus.CounterVec
	syncRuns           *prometheus.CounterVec
	syncedSlots        prometheus.Gauge
	syncSkipped        prometheus.Gauge
}

func NewBookingMetrics() *BookingMetrics {
	m := &BookingMetrics{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_operations_total",
			Help:      "Booking operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		lockContended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_lock_contended_total",
			Help:      "Create attempts rejected because the slot lock was held.",
		}),
		reservationMissing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_missing_total",
			Help:      "Orders whose slot had no capacity ledger row.",
		}, []string{"op"}),
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capacity_sync_runs_total",
			Help:      "Capacity sync runs by result.",
		}, []string{"result"}),
		syncedSlots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "capacity_sync_slots",
			Help:      "Slots upserted by the last successful sync.",
		}),
		syncSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "capacity_sync_skipped_vendors",
			Help:      "Vendors whose slots could not be listed in the last sync.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.outcomes, m.lockContended, m.reservationMissing,
		m.syncRuns, m.syncedSlots, m.syncSkipped,
	)
	return m
}

func (m *BookingMetrics) BookingOutcome(op, outcome string) {
	m.outcomes.WithLabelValues(op, outcome).Inc()
}

func (m *BookingMetrics) LockContended() {
	m.lockContended.Inc()
}

func (m *BookingMetrics) ReservationMissing(op string) {
	m.reservationMissing.WithLabelValues(op).Inc()
}

func (m *BookingMetrics) SyncFinished(vendors, slots, skipped int, err error) {
	if err != nil {
		m.syncRuns.WithLabelValues("error").Inc()
		return
	}
	m.syncRuns.WithLabelValues("ok").Inc()
	m.syncedSlots.Set(float64(slots))
	m.syncSkipped.Set(float64(skipped))
}

func (m *BookingMetrics) Registry() *prometheus.Registry { return m.registry }

func (m *BookingMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
