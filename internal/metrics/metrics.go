// Package metrics records check-in activity.
package metrics

// Recorder receives check-in measurements from the service.
type Recorder interface {
	// RecordCheckin counts one check-in call and the travelers it seated.
	RecordCheckin(flight, class, status string, seated int)
	// ObserveWindowSearch records how long the engine spent on one call.
	ObserveWindowSearch(seconds float64)
	// SetAvailableSeats publishes the size of a class pool.
	SetAvailableSeats(flight, class string, n int)
}
