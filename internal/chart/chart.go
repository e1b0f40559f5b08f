// Package chart renders seating charts as text.
package chart

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iliyamo/flight-checkin/internal/model"
	"github.com/iliyamo/flight-checkin/internal/seating"
)

// Empty is printed in place of a traveler name for a free seat.
const Empty = "NONE"

// Lines returns the chart of a flight one line at a time:
//
//	FLIGHT OA815
//	---------  economy  ---------
//	6: 6A(W)::NONE, 6B()::kid, 6C(A)::john,
func Lines(number string, charts []seating.ClassChart, cat *model.Catalog) []string {
	out := []string{"FLIGHT " + number}
	for _, cc := range charts {
		out = append(out, "---------  "+cat.ClassName(cc.Class)+"  ---------")
		for _, row := range cc.Rows {
			out = append(out, RowLine(row, cat))
		}
	}
	return out
}

// RowLine formats a single row.
func RowLine(row seating.ChartRow, cat *model.Catalog) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(row.Number))
	b.WriteString(":")
	for _, s := range row.Seats {
		b.WriteString(" ")
		b.WriteString(SeatInfo(s, cat))
		b.WriteString("::")
		if s.Occupied {
			b.WriteString(s.Traveler)
		} else {
			b.WriteString(Empty)
		}
		b.WriteString(",")
	}
	return b.String()
}

// SeatInfo returns the short description of a seat: its label followed by
// the type code and an E for exit rows, e.g. "12A(WE)".
func SeatInfo(s seating.ChartSeat, cat *model.Catalog) string {
	code := cat.SeatTypeCode(s.Type)
	if s.Exit {
		code += "E"
	}
	return s.Label + "(" + code + ")"
}

// Render writes the chart to w.
func Render(w io.Writer, number string, charts []seating.ClassChart, cat *model.Catalog) error {
	bw := bufio.NewWriter(w)
	for _, l := range Lines(number, charts, cat) {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return fmt.Errorf("chart: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("chart: write: %w", err)
	}
	return nil
}
