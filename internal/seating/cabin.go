package seating

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iliyamo/flight-checkin/internal/model"
)

// CabinSpec is what a seat-map loader hands to the engine for one class.
// Rows are listed front to back, each row in display order (left to right).
// Seat ids and labels must be unique inside the class; Occupant values are
// ignored.
type CabinSpec struct {
	Class    model.TravelClass
	FirstRow int
	Rows     [][]model.Seat
	ExitRows []int
	Center   float64
}

// Cabin is the seat registry of one travel class.
type Cabin struct {
	class    model.TravelClass
	firstRow int
	exitRows []int
	center   float64

	seats     []model.Seat     // append-only, indexed by seat index
	travelers []model.Traveler // append-only, indexed by traveler index
	rows      [][]int          // seat indices per row, display order
	pool      []int            // free seat indices, ascending seat id
}

// NewCabin builds a cabin with every seat free.
func NewCabin(spec CabinSpec) (*Cabin, error) {
	c := &Cabin{
		class:    spec.Class,
		firstRow: spec.FirstRow,
		exitRows: slices.Clone(spec.ExitRows),
		center:   spec.Center,
		rows:     make([][]int, 0, len(spec.Rows)),
	}
	labels := make(map[string]struct{})
	for _, row := range spec.Rows {
		idx := make([]int, 0, len(row))
		for _, s := range row {
			key := strings.ToUpper(strings.TrimSpace(s.Label))
			if _, dup := labels[key]; dup {
				return nil, fmt.Errorf("cabin %s: seat %s: %w", spec.Class, s.Label, ErrDuplicateSeatLabel)
			}
			labels[key] = struct{}{}
			s.Occupant = model.NoTraveler
			c.seats = append(c.seats, s)
			idx = append(idx, len(c.seats)-1)
		}
		c.rows = append(c.rows, idx)
	}

	c.pool = make([]int, len(c.seats))
	for i := range c.seats {
		c.pool[i] = i
	}
	slices.SortFunc(c.pool, func(a, b int) int { return c.seats[a].ID - c.seats[b].ID })
	for i := 1; i < len(c.pool); i++ {
		if c.seats[c.pool[i]].ID == c.seats[c.pool[i-1]].ID {
			return nil, fmt.Errorf("cabin %s: seat id %d: %w", spec.Class, c.seats[c.pool[i]].ID, ErrDuplicateSeatID)
		}
	}
	return c, nil
}

// Class returns the travel class of the cabin.
func (c *Cabin) Class() model.TravelClass { return c.class }

// FirstRow returns the absolute number of the cabin's first row.
func (c *Cabin) FirstRow() int { return c.firstRow }

// ExitRows returns the absolute numbers of the emergency-exit rows.
func (c *Cabin) ExitRows() []int { return slices.Clone(c.exitRows) }

// Center returns the row the intrinsic seat costs were centred on.
func (c *Cabin) Center() float64 { return c.center }

// Capacity is the number of seats in the cabin, free or not.
func (c *Cabin) Capacity() int { return len(c.seats) }

// Len is the number of free seats.
func (c *Cabin) Len() int { return len(c.pool) }

// Occupied is the number of seats holding a traveler.
func (c *Cabin) Occupied() int { return len(c.seats) - len(c.pool) }

// Available returns copies of the free seats in ascending id order.
func (c *Cabin) Available() []model.Seat {
	out := make([]model.Seat, len(c.pool))
	for i, si := range c.pool {
		out[i] = c.seats[si]
	}
	return out
}

// Rows returns copies of the seats row by row, front to back, each row in
// display order.
func (c *Cabin) Rows() [][]model.Seat {
	out := make([][]model.Seat, len(c.rows))
	for r, idx := range c.rows {
		out[r] = make([]model.Seat, len(idx))
		for i, si := range idx {
			out[r][i] = c.seats[si]
		}
	}
	return out
}

// Seat returns a copy of the seat stored at index i.
func (c *Cabin) Seat(i int) model.Seat { return c.seats[i] }

// Traveler returns the traveler stored at index i.
func (c *Cabin) Traveler(i int) model.Traveler { return c.travelers[i] }

// addTravelers appends travelers to the traveler table and returns their
// indices in the same order.
func (c *Cabin) addTravelers(ts ...model.Traveler) []int {
	idx := make([]int, len(ts))
	for i, t := range ts {
		c.travelers = append(c.travelers, t)
		idx[i] = len(c.travelers) - 1
	}
	return idx
}

// compact drops every occupied seat from the pool, keeping the order of the
// remaining ones.
func (c *Cabin) compact() {
	c.pool = slices.DeleteFunc(c.pool, func(si int) bool { return c.seats[si].Occupied() })
}

// poolIndex returns the position in the pool of the free seat with the given
// label, or -1.
func (c *Cabin) poolIndex(label string) int {
	label = strings.TrimSpace(label)
	return slices.IndexFunc(c.pool, func(si int) bool {
		return strings.EqualFold(c.seats[si].Label, label)
	})
}

// poolID returns the seat id at pool position i.
func (c *Cabin) poolID(i int) int { return c.seats[c.pool[i]].ID }
