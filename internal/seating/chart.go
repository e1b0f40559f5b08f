package seating

import "github.com/iliyamo/flight-checkin/internal/model"

// ChartSeat is the display view of one seat.
type ChartSeat struct {
	Label    string
	Type     model.SeatType
	Exit     bool
	Occupied bool
	Traveler string
}

// ChartRow is one row of a seating chart, seats in display order.
type ChartRow struct {
	Number int
	Seats  []ChartSeat
}

// ClassChart is the seating chart of one class.
type ClassChart struct {
	Class     model.TravelClass
	Rows      []ChartRow
	Capacity  int
	Available int
}

// Chart builds the seating chart of the cabin.  The engine does no
// formatting; see package chart for rendering.
func (c *Cabin) Chart() ClassChart {
	out := ClassChart{
		Class:     c.class,
		Rows:      make([]ChartRow, 0, len(c.rows)),
		Capacity:  len(c.seats),
		Available: len(c.pool),
	}
	for i, row := range c.rows {
		cr := ChartRow{Number: c.firstRow + i, Seats: make([]ChartSeat, 0, len(row))}
		for _, si := range row {
			s := c.seats[si]
			cs := ChartSeat{Label: s.Label, Type: s.Type, Exit: s.Exit, Occupied: s.Occupied()}
			if cs.Occupied {
				cs.Traveler = c.travelers[s.Occupant].Name
			}
			cr.Seats = append(cr.Seats, cs)
		}
		out.Rows = append(out.Rows, cr)
	}
	return out
}

// Chart returns the chart of one class.
func (f *Flight) Chart(class model.TravelClass) (ClassChart, bool) {
	c, ok := f.cabins[class]
	if !ok {
		return ClassChart{}, false
	}
	return c.Chart(), true
}

// Charts returns the charts of every class in enum order.
func (f *Flight) Charts() []ClassChart {
	classes := f.Classes()
	out := make([]ClassChart, 0, len(classes))
	for _, cl := range classes {
		out = append(out, f.cabins[cl].Chart())
	}
	return out
}
