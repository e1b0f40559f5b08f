// Package seatmap reads the textual seat maps and party manifests the
// check-in engine is fed with.
//
// A seat map looks like this:
//
//	FLIGHT OA815
//	business
//	rows 3
//	seats A B, C D
//	economy
//	rows 20
//	emergency 12
//	center 14
//	seats A B C, D E F
//
// Keywords are case-insensitive and take their arguments on the same line.
// Commas in a seats line separate aisle groups.  Unknown keywords are
// ignored.
package seatmap

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/iliyamo/flight-checkin/internal/model"
	"github.com/iliyamo/flight-checkin/internal/seating"
)

// costScale is the intrinsic cost of a seat in the first or last row of a
// class when the class is centred in the middle.
const costScale = 5.0

// Manifest is a parsed seat map.
type Manifest struct {
	Number string
	Cabins []seating.CabinSpec
}

// Flight builds the engine's flight from the manifest.
func (m *Manifest) Flight(w seating.Weights) (*seating.Flight, error) {
	return seating.NewFlight(m.Number, w, m.Cabins...)
}

type column struct {
	label string
	typ   model.SeatType
}

type section struct {
	class    model.TravelClass
	line     int
	rows     int
	hasRows  bool
	firstRow int
	exits    []int
	center   int
	hasCtr   bool
	columns  []column
}

// Load reads the seat map stored at path.
func Load(path string, cat *model.Catalog) (*Manifest, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, cat)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("seatmap: %w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("seatmap: open %q: %w", path, err)
	}
	return f, nil
}

// Parse reads a seat map.  The first word must be "flight" followed by the
// flight number.  A nil catalog means model.DefaultCatalog.
func Parse(r io.Reader, cat *model.Catalog) (*Manifest, error) {
	if cat == nil {
		cat = model.DefaultCatalog()
	}
	sc := bufio.NewScanner(r)
	m := &Manifest{}
	var (
		sections  []*section
		cur       *section
		totalRows = 1
		lineNo    = 0
	)
	formatErr := func(msg string, args ...any) error {
		return fmt.Errorf("seatmap: line %d: %w: %s", lineNo, ErrFormat, fmt.Sprintf(msg, args...))
	}

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if m.Number == "" {
			if !strings.EqualFold(fields[0], "flight") || len(fields) < 2 {
				return nil, formatErr("expected \"flight <number>\" header")
			}
			m.Number = fields[1]
			fields = fields[2:]
		}

		for i := 0; i < len(fields); i++ {
			word := strings.ToLower(fields[i])
			switch {
			case cat.IsClass(word):
				class, _ := cat.ParseClass(word)
				for _, s := range sections {
					if s.class == class {
						return nil, formatErr("class %s declared twice", word)
					}
				}
				cur = &section{class: class, line: lineNo}
				sections = append(sections, cur)

			case word == "rows" || word == "emergency" || word == "center":
				if cur == nil {
					return nil, formatErr("%q before any travel class", word)
				}
				if i+1 >= len(fields) {
					return nil, formatErr("%q needs a number", word)
				}
				i++
				n, err := strconv.Atoi(fields[i])
				if err != nil || n < 0 {
					return nil, formatErr("%q: invalid number %q", word, fields[i])
				}
				switch word {
				case "rows":
					if cur.hasRows {
						return nil, formatErr("rows given twice for %s", cur.class)
					}
					cur.rows, cur.hasRows = n, true
					cur.firstRow = totalRows
					totalRows += n
				case "emergency":
					cur.exits = append(cur.exits, n)
				case "center":
					cur.center, cur.hasCtr = n, true
				}

			case word == "seats":
				if cur == nil {
					return nil, formatErr("\"seats\" before any travel class")
				}
				rest := strings.TrimSpace(line[seatsOffset(line)+len("seats"):])
				cols := parseColumns(rest)
				if len(cols) == 0 {
					return nil, formatErr("empty seat layout")
				}
				if l, dup := duplicateColumn(cols); dup {
					return nil, formatErr("seat column %q listed twice", l)
				}
				cur.columns = cols
				i = len(fields)

			default:
				// unknown keywords are ignored
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("seatmap: read: %w", err)
	}
	if m.Number == "" {
		return nil, fmt.Errorf("seatmap: %w: missing \"flight\" header", ErrFormat)
	}

	id := 0
	for _, s := range sections {
		if !s.hasRows || len(s.columns) == 0 {
			return nil, fmt.Errorf("seatmap: line %d: %w: class %s needs both rows and seats", s.line, ErrFormat, s.class)
		}
		m.Cabins = append(m.Cabins, s.build(&id))
	}
	return m, nil
}

// seatsOffset returns the byte offset of the "seats" keyword in line.
func seatsOffset(line string) int {
	return strings.Index(strings.ToLower(line), "seats")
}

// parseColumns splits a seats line into labelled columns.  The outer seats
// of each comma separated group sit next to an aisle; the outermost seats of
// the row sit next to a window.
func parseColumns(spec string) []column {
	var cols []column
	for _, group := range strings.Split(spec, ",") {
		labels := strings.FieldsFunc(group, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		})
		if len(labels) == 0 {
			continue
		}
		start := len(cols)
		for _, l := range labels {
			cols = append(cols, column{label: l, typ: model.SeatOther})
		}
		cols[start].typ = model.SeatAisle
		cols[len(cols)-1].typ = model.SeatAisle
	}
	if len(cols) > 0 {
		cols[0].typ = model.SeatWindow
		cols[len(cols)-1].typ = model.SeatWindow
	}
	return cols
}

// duplicateColumn returns the first label that appears twice in cols,
// ignoring case.
func duplicateColumn(cols []column) (string, bool) {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		k := strings.ToUpper(c.label)
		if _, ok := seen[k]; ok {
			return c.label, true
		}
		seen[k] = struct{}{}
	}
	return "", false
}

// build lays the seats out row by row.  Ids snake through the cabin: even
// rows are numbered right to left, odd rows left to right, so the last seat
// of one row and the first seat of the next are id neighbours.
func (s *section) build(nextID *int) seating.CabinSpec {
	center := float64(s.firstRow) + 0.5*float64(s.rows)
	if s.hasCtr {
		center = float64(s.center)
	}
	spec := seating.CabinSpec{
		Class:    s.class,
		FirstRow: s.firstRow,
		ExitRows: slices.Clone(s.exits),
		Center:   center,
		Rows:     make([][]model.Seat, s.rows),
	}
	half := 0.5 * float64(s.rows)
	rel := center - float64(s.firstRow)
	for i := 0; i < s.rows; i++ {
		number := s.firstRow + i
		cost := costScale * math.Abs(float64(i)-rel) / half
		exit := slices.Contains(s.exits, number)
		row := make([]model.Seat, len(s.columns))
		place := func(k int) {
			row[k] = model.Seat{
				ID:       *nextID,
				Type:     s.columns[k].typ,
				Label:    strconv.Itoa(number) + s.columns[k].label,
				Row:      number,
				Cost:     cost,
				Exit:     exit,
				Occupant: model.NoTraveler,
			}
			*nextID++
		}
		if i%2 == 1 {
			for k := range s.columns {
				place(k)
			}
		} else {
			for k := len(s.columns) - 1; k >= 0; k-- {
				place(k)
			}
		}
		spec.Rows[i] = row
	}
	return spec
}
