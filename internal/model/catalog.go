package model

import (
	"fmt"
	"strings"
)

// Catalog converts between the textual names used in seat maps, manifests
// and API payloads and the TravelClass / SeatType enums.  The catalog is
// built once at package initialisation and never modified afterwards, so a
// single instance can be shared freely between goroutines.
type Catalog struct {
	classes    map[string]TravelClass
	classNames map[TravelClass]string
	seatTypes  map[string]SeatType
	seatCodes  map[SeatType]string
	seatNames  map[SeatType]string
}

var defaultCatalog = newCatalog()

// DefaultCatalog returns the process-wide catalog.
func DefaultCatalog() *Catalog { return defaultCatalog }

func newCatalog() *Catalog {
	return &Catalog{
		classes: map[string]TravelClass{
			"first":    ClassFirst,
			"business": ClassBusiness,
			"economy":  ClassEconomy,
		},
		classNames: map[TravelClass]string{
			ClassFirst:    "first",
			ClassBusiness: "business",
			ClassEconomy:  "economy",
		},
		seatTypes: map[string]SeatType{
			"window": SeatWindow,
			"w":      SeatWindow,
			"aisle":  SeatAisle,
			"a":      SeatAisle,
			"other":  SeatOther,
			"none":   SeatOther,
			"any":    SeatOther,
			"":       SeatOther,
		},
		seatCodes: map[SeatType]string{
			SeatWindow: "W",
			SeatAisle:  "A",
			SeatOther:  "",
		},
		seatNames: map[SeatType]string{
			SeatWindow: "window",
			SeatAisle:  "aisle",
			SeatOther:  "none",
		},
	}
}

// IsClass reports whether s names a travel class.
func (c *Catalog) IsClass(s string) bool {
	_, ok := c.classes[normalize(s)]
	return ok
}

// ParseClass maps a class name such as "Economy" to its TravelClass.
func (c *Catalog) ParseClass(s string) (TravelClass, error) {
	if v, ok := c.classes[normalize(s)]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("travel class %q: %w", s, ErrUnknownCategory)
}

// ParseSeatType maps a seat type or preference name to its SeatType.  The
// empty string, "none" and "any" all mean "no preference".
func (c *Catalog) ParseSeatType(s string) (SeatType, error) {
	if v, ok := c.seatTypes[normalize(s)]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("seat type %q: %w", s, ErrUnknownCategory)
}

// ClassName returns the lower-case name of a class, or "" when unknown.
func (c *Catalog) ClassName(t TravelClass) string { return c.classNames[t] }

// SeatTypeCode returns the one-letter code printed on seating charts.
func (c *Catalog) SeatTypeCode(t SeatType) string { return c.seatCodes[t] }

// SeatTypeName returns the long name of a seat type ("window", "aisle", "none").
func (c *Catalog) SeatTypeName(t SeatType) string { return c.seatNames[t] }

// Classes lists every known class in enum order.
func (c *Catalog) Classes() []TravelClass {
	return []TravelClass{ClassFirst, ClassBusiness, ClassEconomy}
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
