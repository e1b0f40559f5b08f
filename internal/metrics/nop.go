package metrics

// NopMetrics discards every measurement.  Used by the offline CLI and tests.
type NopMetrics struct{}

var _ Recorder = (*NopMetrics)(nil)

// NewNop creates a no-op recorder.
func NewNop() *NopMetrics { return &NopMetrics{} }

// RecordCheckin discards the check-in metric.
func (n *NopMetrics) RecordCheckin(_, _, _ string, _ int) {}

// ObserveWindowSearch discards the latency metric.
func (n *NopMetrics) ObserveWindowSearch(_ float64) {}

// SetAvailableSeats discards the pool gauge.
func (n *NopMetrics) SetAvailableSeats(_, _ string, _ int) {}
