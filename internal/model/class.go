package model

// TravelClass is the fare cabin a seat or a party belongs to.  Seat pools are
// partitioned by class and a party is always seated inside a single class.
type TravelClass int

const (
	ClassFirst TravelClass = iota
	ClassBusiness
	ClassEconomy
)

// String returns the lower-case name of the class ("economy", ...).
func (c TravelClass) String() string { return defaultCatalog.ClassName(c) }
