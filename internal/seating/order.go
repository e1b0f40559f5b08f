package seating

import (
	"slices"

	"github.com/iliyamo/flight-checkin/internal/model"
)

// SortByRestrictiveness orders travelers so the hardest to place come first:
// minors before adults, then by preference in SeatType order (window, aisle,
// no preference).  The sort is stable, so sorting twice changes nothing.
func SortByRestrictiveness(ts []model.Traveler) {
	slices.SortStableFunc(ts, model.CompareRestrictiveness)
}
