package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNop(t *testing.T) {
	m := NewNop()
	require.NotNil(t, m)
	require.NotPanics(t, func() {
		m.RecordCheckin("OA815", "economy", "ok", 3)
		m.ObserveWindowSearch(0.01)
		m.SetAvailableSeats("OA815", "economy", -1)
	})
}

func TestPrometheus_RecordCheckin(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "")

	p.RecordCheckin("OA815", "economy", "ok", 3)
	p.RecordCheckin("OA815", "economy", "ok", 1)
	p.RecordCheckin("OA815", "economy", "overbooked", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.checkins.WithLabelValues("OA815", "economy", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.checkins.WithLabelValues("OA815", "economy", "overbooked")))
	assert.Equal(t, 4.0, testutil.ToFloat64(p.seated.WithLabelValues("OA815", "economy")))
}

func TestPrometheus_AvailableSeats(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.SetAvailableSeats("OA815", "business", 18)
	p.SetAvailableSeats("OA815", "business", 16)
	assert.Equal(t, 16.0, testutil.ToFloat64(p.availability.WithLabelValues("OA815", "business")))
}

func TestPrometheus_Registration(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")
	p.ObserveWindowSearch(0.002)
	p.RecordCheckin("F1", "first", "ok", 1)
	p.SetAvailableSeats("F1", "first", 7)

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Panics(t, func() { NewPrometheus(reg, "test") }, "duplicate registration must fail")
}
