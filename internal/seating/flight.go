package seating

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/iliyamo/flight-checkin/internal/model"
)

// Flight groups the cabins of one flight and runs check-ins against them.
type Flight struct {
	number  string
	weights Weights
	cabins  map[model.TravelClass]*Cabin
}

// NewFlight builds a flight from one spec per class.
func NewFlight(number string, w Weights, specs ...CabinSpec) (*Flight, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("flight %s: %w", number, err)
	}
	f := &Flight{
		number:  number,
		weights: w,
		cabins:  make(map[model.TravelClass]*Cabin, len(specs)),
	}
	for _, spec := range specs {
		if _, dup := f.cabins[spec.Class]; dup {
			return nil, fmt.Errorf("flight %s: class %s: %w", number, spec.Class, ErrDuplicateClass)
		}
		c, err := NewCabin(spec)
		if err != nil {
			return nil, fmt.Errorf("flight %s: %w", number, err)
		}
		f.cabins[spec.Class] = c
	}
	return f, nil
}

// Number returns the flight number.
func (f *Flight) Number() string { return f.number }

// Weights returns the penalty weights the flight was built with.
func (f *Flight) Weights() Weights { return f.weights }

// Cabin returns the cabin of a class.
func (f *Flight) Cabin(class model.TravelClass) (*Cabin, bool) {
	c, ok := f.cabins[class]
	return c, ok
}

// Classes lists the configured classes in enum order.
func (f *Flight) Classes() []model.TravelClass {
	return slices.Sorted(maps.Keys(f.cabins))
}

// Available returns the free seats of a class in id order.
func (f *Flight) Available(class model.TravelClass) []model.Seat {
	if c, ok := f.cabins[class]; ok {
		return c.Available()
	}
	return nil
}

// Checkin seats a party inside its class.  When the class has fewer free
// seats than the party has members the result is StatusOverbooked and only
// the most restrictive travelers are seated.  A class the flight does not
// have behaves like a class without free seats.
func (f *Flight) Checkin(p *model.Party) CheckinResult {
	c, ok := f.cabins[p.Class]
	if !ok {
		res := CheckinResult{Status: StatusOK, Class: p.Class}
		if p.Len() > 0 {
			res.Status = StatusOverbooked
			res.Unseated = p.Sorted()
		}
		return res
	}
	return c.checkin(f.weights, p.Sorted())
}

// CheckinTraveler seats a single traveler, letting the engine choose.
func (f *Flight) CheckinTraveler(class model.TravelClass, name string, pref model.SeatType, minor bool) CheckinResult {
	p := model.NewParty(class)
	p.Add(name, pref, minor)
	return f.Checkin(p)
}

// CheckinSeat seats a single traveler on the seat with the given label,
// bypassing the window search.  The pool is left untouched on failure.
func (f *Flight) CheckinSeat(class model.TravelClass, name string, minor bool, label string) CheckinResult {
	t := model.Traveler{Name: name, Preference: model.SeatOther, Minor: minor}
	c, ok := f.cabins[class]
	if !ok || c.Len() == 0 {
		return CheckinResult{Status: StatusOverbooked, Class: class, Unseated: []model.Traveler{t}}
	}
	return c.checkinSeat(f.weights, t, label)
}

// checkin seats sorted, which must already be in restrictiveness order.
func (c *Cabin) checkin(w Weights, sorted []model.Traveler) CheckinResult {
	res := CheckinResult{Status: StatusOK, Class: c.class}
	if len(sorted) > len(c.pool) {
		res.Status = StatusOverbooked
	}

	k := min(len(sorted), len(c.pool))
	res.Unseated = sorted[k:]
	if k == 0 {
		return res
	}
	party := c.addTravelers(sorted...)

	start, score := c.search(w, party, k)
	res.Score = score

	m := c.match(w, party, c.pool[start:start+k], commit)
	for _, pr := range m.Pairs {
		res.Assignments = append(res.Assignments, Assignment{
			Traveler: c.travelers[pr.traveler],
			Seat:     c.seats[pr.seat],
			Penalty:  pr.penalty,
		})
	}
	c.compact()
	return res
}

// search slides a window of width k over the pool and returns the start of
// the cheapest window.  The first minimum wins.
func (c *Cabin) search(w Weights, party []int, k int) (int, float64) {
	best, bestScore := 0, math.Inf(1)
	for s := 0; s+k <= len(c.pool); s++ {
		score := c.match(w, party, c.pool[s:s+k], scoreOnly).Score()
		score += c.boundaryPenalty(w, s, k)
		if score < bestScore {
			best, bestScore = s, score
		}
	}
	return best, bestScore
}

// boundaryPenalty charges a window for each side whose neighbour in the pool
// is not physically adjacent, meaning the seat in between is taken.  A
// missing neighbour costs nothing.
func (c *Cabin) boundaryPenalty(w Weights, start, k int) float64 {
	var p float64
	last := start + k - 1
	if last+1 < len(c.pool) && c.poolID(last+1) != c.poolID(last)+1 {
		p += w.OccupiedNeighbor
	}
	if start > 0 && c.poolID(start-1) != c.poolID(start)-1 {
		p += w.OccupiedNeighbor
	}
	return p
}

func (c *Cabin) checkinSeat(w Weights, t model.Traveler, label string) CheckinResult {
	pos := c.poolIndex(label)
	if pos < 0 {
		return CheckinResult{Status: StatusSeatUnavailable, Class: c.class, Unseated: []model.Traveler{t}}
	}
	ti := c.addTravelers(t)[0]
	si := c.pool[pos]
	seat := &c.seats[si]
	seat.Occupant = ti
	c.pool = slices.Delete(c.pool, pos, pos+1)

	pen := w.Penalty(*seat, t)
	return CheckinResult{
		Status:      StatusOK,
		Class:       c.class,
		Assignments: []Assignment{{Traveler: t, Seat: *seat, Penalty: pen}},
		Score:       pen + seat.Cost,
	}
}
