package seating

import "github.com/iliyamo/flight-checkin/internal/model"

// Status is the outcome of a check-in call.
type Status int

const (
	StatusOK Status = iota
	StatusOverbooked
	StatusSeatUnavailable
)

// String returns the snake_case name used in logs and API payloads.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOverbooked:
		return "overbooked"
	case StatusSeatUnavailable:
		return "seat_unavailable"
	}
	return "unknown"
}

// Err maps a negative status to its sentinel error, nil for StatusOK.
func (s Status) Err() error {
	switch s {
	case StatusOverbooked:
		return ErrOverbooked
	case StatusSeatUnavailable:
		return ErrSeatUnavailable
	}
	return nil
}

// Assignment records one traveler placed on one seat.  Seat is a snapshot
// taken right after the assignment.
type Assignment struct {
	Traveler model.Traveler
	Seat     model.Seat
	Penalty  float64
}

// CheckinResult describes what a check-in call did.  Assignments are listed
// in matching order (most restrictive traveler first).  Unseated lists the
// travelers left without a seat when the class was overbooked.  Score is the
// score of the chosen window, boundary penalties included.
type CheckinResult struct {
	Status      Status
	Class       model.TravelClass
	Assignments []Assignment
	Unseated    []model.Traveler
	Score       float64
}
