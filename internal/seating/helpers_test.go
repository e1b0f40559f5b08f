package seating

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-checkin/internal/model"
)

func seat(id int, typ model.SeatType, label string, cost float64, exit bool) model.Seat {
	return model.Seat{ID: id, Type: typ, Label: label, Cost: cost, Exit: exit}
}

func newTestCabin(t *testing.T, rows ...[]model.Seat) *Cabin {
	t.Helper()
	c, err := NewCabin(CabinSpec{Class: model.ClassEconomy, FirstRow: 1, Rows: rows})
	require.NoError(t, err)
	return c
}

func newTestFlight(t *testing.T, rows ...[]model.Seat) *Flight {
	t.Helper()
	f, err := NewFlight("TS100", DefaultWeights(), CabinSpec{Class: model.ClassEconomy, FirstRow: 1, Rows: rows})
	require.NoError(t, err)
	return f
}

// row3x6 builds rows of "A B C, D E F" with serpentine ids, cost by row.
func rows3x6(n int) [][]model.Seat {
	types := []model.SeatType{model.SeatWindow, model.SeatOther, model.SeatAisle, model.SeatAisle, model.SeatOther, model.SeatWindow}
	cols := "ABCDEF"
	var out [][]model.Seat
	id := 0
	for r := 0; r < n; r++ {
		row := make([]model.Seat, 6)
		for k := 0; k < 6; k++ {
			col := k
			if r%2 == 0 {
				col = 5 - k
			}
			row[col] = model.Seat{
				ID:    id,
				Type:  types[col],
				Label: string(rune('1'+r)) + string(cols[col]),
				Row:   r + 1,
				Cost:  float64(r),
				Exit:  r == 1,
			}
			id++
		}
		out = append(out, row)
	}
	return out
}

func poolIDs(c *Cabin) []int {
	ids := make([]int, 0, c.Len())
	for _, s := range c.Available() {
		ids = append(ids, s.ID)
	}
	return ids
}
