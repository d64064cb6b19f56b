// Package metrics exposes Prometheus instrumentation for store operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing,
// so stores can be built without instrumentation.
type Metrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	CorruptLoads      *prometheus.CounterVec
	Reservations      *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "innkeeper_store_operations_total",
			Help: "Store operations by store, operation and outcome",
		}, []string{"store", "operation", "outcome"}),

		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "innkeeper_store_operation_duration_seconds",
			Help:    "Time spent in a full load-mutate-save cycle",
			Buckets: prometheus.DefBuckets,
		}, []string{"store", "operation"}),

		CorruptLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "innkeeper_store_corrupt_loads_total",
			Help: "Loads that found unreadable data and fell back to an empty store",
		}, []string{"store"}),

		Reservations: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "innkeeper_hotel_reservations",
			Help: "Current reservation count per hotel after the last change",
		}, []string{"hotel_id"}),
	}
}

// ObserveOperation records one finished operation.
func (m *Metrics) ObserveOperation(store, operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(store, operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(store, operation).Observe(d.Seconds())
}

// ObserveCorruption records a load that fell back to an empty store.
func (m *Metrics) ObserveCorruption(store string) {
	if m == nil {
		return
	}
	m.CorruptLoads.WithLabelValues(store).Inc()
}

// SetReservations records the reservation count of a hotel.
func (m *Metrics) SetReservations(hotelID string, count int) {
	if m == nil {
		return
	}
	m.Reservations.WithLabelValues(hotelID).Set(float64(count))
}

// ForgetHotel drops the reservation gauge of a deleted hotel.
func (m *Metrics) ForgetHotel(hotelID string) {
	if m == nil {
		return
	}
	m.Reservations.DeleteLabelValues(hotelID)
}
