package model

import (
	"cmp"
	"slices"
)

// Traveler is a single passenger.  The name is for display only and does not
// have to be unique.  A Preference of SeatOther means the traveler does not
// care about the seat type.
type Traveler struct {
	Name       string
	Preference SeatType
	Minor      bool
}

// Party is a group of travelers checking in together.  All members share the
// party's travel class.  The order of Members carries no meaning; the
// check-in engine sorts its own copy before matching.
type Party struct {
	Class   TravelClass
	Members []Traveler
}

// NewParty returns an empty party for the given class.
func NewParty(class TravelClass) *Party {
	return &Party{Class: class}
}

// Add appends a traveler to the party.
func (p *Party) Add(name string, pref SeatType, minor bool) {
	p.Members = append(p.Members, Traveler{Name: name, Preference: pref, Minor: minor})
}

// Reset removes every member so the party can be refilled for the next
// check-in.  The class is kept.
func (p *Party) Reset() { p.Members = p.Members[:0] }

// Len returns the number of members.
func (p *Party) Len() int { return len(p.Members) }

// Sorted returns the members ordered by CompareRestrictiveness.  The party
// itself is left untouched.
func (p *Party) Sorted() []Traveler {
	out := slices.Clone(p.Members)
	slices.SortStableFunc(out, CompareRestrictiveness)
	return out
}

// CompareRestrictiveness orders travelers from hardest to easiest to seat:
// minors first, then by preference in SeatType order.
func CompareRestrictiveness(a, b Traveler) int {
	if a.Minor != b.Minor {
		if a.Minor {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Preference, b.Preference)
}
