package seatmap

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/iliyamo/flight-checkin/internal/model"
)

// LoadParty reads a party manifest from path.
func LoadParty(path string, cat *model.Catalog) (*model.Party, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseParty(f, cat)
}

// ParseParty reads a party manifest.  The first word names the travel
// class; every following line describes one traveler:
//
//	<name> <window|aisle|none> [minor|adult]
//
// Blank lines and lines starting with '#' are skipped.
func ParseParty(r io.Reader, cat *model.Catalog) (*model.Party, error) {
	if cat == nil {
		cat = model.DefaultCatalog()
	}
	sc := bufio.NewScanner(r)
	var party *model.Party
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if party == nil {
			class, err := cat.ParseClass(fields[0])
			if err != nil {
				return nil, fmt.Errorf("party: line %d: %w", lineNo, err)
			}
			party = model.NewParty(class)
			if len(fields) > 1 {
				return nil, fmt.Errorf("party: line %d: %w: class line has trailing words", lineNo, ErrFormat)
			}
			continue
		}
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("party: line %d: %w: want \"<name> <preference> [minor|adult]\"", lineNo, ErrFormat)
		}
		pref, err := cat.ParseSeatType(fields[1])
		if err != nil {
			return nil, fmt.Errorf("party: line %d: %w", lineNo, err)
		}
		minor := false
		if len(fields) == 3 {
			switch strings.ToLower(fields[2]) {
			case "minor", "child":
				minor = true
			case "adult":
			default:
				return nil, fmt.Errorf("party: line %d: %w: age %q", lineNo, ErrFormat, fields[2])
			}
		}
		party.Add(fields[0], pref, minor)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("party: read: %w", err)
	}
	if party == nil {
		return nil, fmt.Errorf("party: %w: missing travel class", ErrFormat)
	}
	return party, nil
}
