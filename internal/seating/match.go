package seating

import (
	"math"
	"slices"

	"github.com/iliyamo/flight-checkin/internal/model"
)

type matchMode int

const (
	scoreOnly matchMode = iota // compute the score, touch nothing
	commit                     // also seat the travelers
)

type pairing struct {
	traveler int
	seat     int
	penalty  float64
}

// matchResult is the outcome of matching a party against a window.  Cost is
// the sum of penalties and intrinsic seat costs, Spread the non-contiguity
// term.  Pairs is only filled in commit mode.
type matchResult struct {
	Cost   float64
	Spread float64
	Pairs  []pairing
}

func (r matchResult) Score() float64 { return r.Cost + r.Spread }

// match gives each traveler of party, in order, the cheapest seat of window
// not claimed by an earlier traveler.  Ties go to the seat that comes first.
// Both modes run the exact same steps on a private copy of window, so they
// always agree on the score.
func (c *Cabin) match(w Weights, party, window []int, mode matchMode) matchResult {
	cand := slices.Clone(window)
	var res matchResult
	minID, maxID := math.MaxInt, math.MinInt
	n := 0
	for _, ti := range party {
		if n == len(cand) {
			break
		}
		t := c.travelers[ti]
		best := n
		bestPen := w.Penalty(c.seats[cand[n]], t)
		for j := n + 1; j < len(cand); j++ {
			if p := w.Penalty(c.seats[cand[j]], t); p < bestPen {
				best, bestPen = j, p
			}
		}

		si := cand[best]
		seat := &c.seats[si]
		res.Cost += bestPen
		res.Cost += seat.Cost
		minID = min(minID, seat.ID)
		maxID = max(maxID, seat.ID)
		if mode == commit {
			seat.Occupant = ti
			res.Pairs = append(res.Pairs, pairing{traveler: ti, seat: si, penalty: bestPen})
		}

		cand[n], cand[best] = cand[best], cand[n]
		n++
	}
	if n > 0 {
		res.Spread = float64(maxID - minID - (n - 1))
	}
	return res
}

// Score returns the score travelers would get on window, a list of seat
// indices, without seating anybody.  Travelers are matched in the order
// given.
func (c *Cabin) Score(w Weights, travelers []model.Traveler, window []int) float64 {
	n := len(c.travelers)
	defer func() {
		clear(c.travelers[n:])
		c.travelers = c.travelers[:n]
	}()
	party := c.addTravelers(travelers...)
	return c.match(w, party, window, scoreOnly).Score()
}
