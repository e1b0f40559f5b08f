package seating

import (
	"fmt"

	"github.com/iliyamo/flight-checkin/internal/model"
)

// Weights are the magnitudes of the penalty terms used while matching.
//
// WrongType is charged when a traveler with a seat-type preference ends up on
// a seat of another type.  Safety is charged when a minor sits in an
// emergency-exit row and must exceed WrongType.  OccupiedNeighbor is charged
// per side when a candidate window borders a seat that is no longer free.
type Weights struct {
	WrongType        float64 `yaml:"wrong_type"`
	Safety           float64 `yaml:"safety"`
	OccupiedNeighbor float64 `yaml:"occupied_neighbor"`
}

// DefaultWeights returns the weights used when nothing else is configured.
func DefaultWeights() Weights {
	return Weights{
		WrongType:        1,
		Safety:           100,
		OccupiedNeighbor: 20,
	}
}

// Validate checks that every weight is non-negative and that the safety
// penalty dominates the seat-type penalty.
func (w Weights) Validate() error {
	if w.WrongType < 0 || w.Safety < 0 || w.OccupiedNeighbor < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidWeights)
	}
	if w.Safety <= w.WrongType {
		return fmt.Errorf("%w: safety (%g) must exceed wrong_type (%g)", ErrInvalidWeights, w.Safety, w.WrongType)
	}
	return nil
}

// Penalty scores how badly a seat fits a traveler.  Zero is a perfect fit.
func (w Weights) Penalty(s model.Seat, t model.Traveler) float64 {
	var p float64
	if t.Preference != model.SeatOther && t.Preference != s.Type {
		p += w.WrongType
	}
	if t.Minor && s.Exit {
		p += w.Safety
	}
	return p
}
