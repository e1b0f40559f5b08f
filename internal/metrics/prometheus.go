package metrics

import "github.com/prometheus/client_golang/prometheus"

// PrometheusCollector implements Recorder backed by Prometheus.
type PrometheusCollector struct {
	checkins     *prometheus.CounterVec
	seated       *prometheus.CounterVec
	searchTime   prometheus.Histogram
	availability *prometheus.GaugeVec
}

var _ Recorder = (*PrometheusCollector)(nil)

// NewPrometheus creates the collectors and registers them with reg.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "checkin" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "checkin"
	}

	p := &PrometheusCollector{
		checkins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_total",
			Help:      "Check-in calls by flight, class and outcome.",
		}, []string{"flight", "class", "status"}),
		seated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "travelers_seated_total",
			Help:      "Travelers given a seat, by flight and class.",
		}, []string{"flight", "class"}),
		searchTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "window_search_seconds",
			Help:      "Time spent choosing and committing a seat window.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		availability: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "available_seats",
			Help:      "Free seats left in each class pool.",
		}, []string{"flight", "class"}),
	}
	reg.MustRegister(p.checkins, p.seated, p.searchTime, p.availability)
	return p
}

// RecordCheckin counts the call and the travelers it seated.
func (p *PrometheusCollector) RecordCheckin(flight, class, status string, seated int) {
	p.checkins.WithLabelValues(flight, class, status).Inc()
	if seated > 0 {
		p.seated.WithLabelValues(flight, class).Add(float64(seated))
	}
}

// ObserveWindowSearch records the engine latency of one call.
func (p *PrometheusCollector) ObserveWindowSearch(seconds float64) {
	p.searchTime.Observe(seconds)
}

// SetAvailableSeats sets the pool gauge of one class.
func (p *PrometheusCollector) SetAvailableSeats(flight, class string, n int) {
	p.availability.WithLabelValues(flight, class).Set(float64(n))
}
