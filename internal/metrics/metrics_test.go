package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOperation("hotels", "create", "ok", 5*time.Millisecond)
	m.ObserveOperation("hotels", "create", "duplicate_id", time.Millisecond)
	m.ObserveOperation("hotels", "create", "ok", time.Millisecond)

	if got := testutil.ToFloat64(m.Operations.WithLabelValues("hotels", "create", "ok")); got != 2 {
		t.Errorf("ok count: expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.Operations.WithLabelValues("hotels", "create", "duplicate_id")); got != 1 {
		t.Errorf("duplicate_id count: expected 1, got %v", got)
	}

	m.ObserveCorruption("customers")
	if got := testutil.ToFloat64(m.CorruptLoads.WithLabelValues("customers")); got != 1 {
		t.Errorf("corrupt loads: expected 1, got %v", got)
	}

	m.SetReservations("H1", 2)
	if got := testutil.ToFloat64(m.Reservations.WithLabelValues("H1")); got != 2 {
		t.Errorf("reservations: expected 2, got %v", got)
	}
	m.ForgetHotel("H1")
	if got := testutil.CollectAndCount(m.Reservations); got != 0 {
		t.Errorf("expected gauge series to be dropped, got %d", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	// None of these may panic
	m.ObserveOperation("hotels", "create", "ok", time.Millisecond)
	m.ObserveCorruption("hotels")
	m.SetReservations("H1", 1)
	m.ForgetHotel("H1")
}
