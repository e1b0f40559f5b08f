// Package queue carries check-in events over RabbitMQ.
package queue

import (
	"time"

	"github.com/iliyamo/flight-checkin/internal/model"
	"github.com/iliyamo/flight-checkin/internal/seating"
)

// CheckinQueueName is the durable queue check-in events are published to.
const CheckinQueueName = "checkin.completed"

// CheckinCompletedEvent is published after a check-in call seated at least
// one traveler.  It carries enough for downstream consumers to log, notify
// or print boarding passes without asking the service.
type CheckinCompletedEvent struct {
	Flight      string      `json:"flight"`
	Class       string      `json:"class"`
	Status      string      `json:"status"`
	Agent       string      `json:"agent,omitempty"`
	Seats       []SeatEvent `json:"seats"`
	Unseated    []string    `json:"unseated,omitempty"`
	Score       float64     `json:"score"`
	CheckedInAt string      `json:"checked_in_at"`
}

// SeatEvent is one traveler placed on one seat.
type SeatEvent struct {
	Traveler string  `json:"traveler"`
	Seat     string  `json:"seat"`
	Minor    bool    `json:"minor,omitempty"`
	Penalty  float64 `json:"penalty"`
}

// NewCheckinCompletedEvent converts an engine result into an event.
func NewCheckinCompletedEvent(flight, agent string, res seating.CheckinResult, at time.Time) CheckinCompletedEvent {
	ev := CheckinCompletedEvent{
		Flight:      flight,
		Class:       model.DefaultCatalog().ClassName(res.Class),
		Status:      res.Status.String(),
		Agent:       agent,
		Seats:       make([]SeatEvent, 0, len(res.Assignments)),
		Score:       res.Score,
		CheckedInAt: at.UTC().Format(time.RFC3339),
	}
	for _, a := range res.Assignments {
		ev.Seats = append(ev.Seats, SeatEvent{
			Traveler: a.Traveler.Name,
			Seat:     a.Seat.Label,
			Minor:    a.Traveler.Minor,
			Penalty:  a.Penalty,
		})
	}
	for _, t := range res.Unseated {
		ev.Unseated = append(ev.Unseated, t.Name)
	}
	return ev
}
