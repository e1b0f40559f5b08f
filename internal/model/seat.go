package model

// SeatType classifies a seat by its position in the row.  The order of the
// constants is significant: window seats sort before aisle seats, which sort
// before everything else.  Cabins usually have fewer window seats than aisle
// seats, so travelers asking for a window are the harder ones to place.
type SeatType int

const (
	SeatWindow SeatType = iota // seat next to the fuselage
	SeatAisle                  // seat next to an aisle
	SeatOther                  // middle seat; as a preference it means "no preference"
)

// NoTraveler is the Occupant value of a seat nobody sits on.
const NoTraveler = -1

// Seat describes a physical seat inside one travel class.  Seats are created
// once when the seat map is loaded and are never destroyed; the only field
// that changes afterwards is Occupant, and it changes exactly once.
//
// Fields:
//
//	ID       – adjacency id.  Two seats of the same class are physically next
//	           to each other when their ids differ by one.
//	Type     – window, aisle or other.
//	Label    – human readable label such as "12A".
//	Row      – absolute row number the seat belongs to.
//	Cost     – intrinsic cost used for load balancing; lower is preferred.
//	Exit     – whether the seat is in an emergency-exit row.
//	Occupant – index into the owning cabin's traveler table, NoTraveler if free.
type Seat struct {
	ID       int
	Type     SeatType
	Label    string
	Row      int
	Cost     float64
	Exit     bool
	Occupant int
}

// Occupied reports whether a traveler has been assigned to the seat.
func (s Seat) Occupied() bool { return s.Occupant != NoTraveler }

// String returns the short code of the seat type ("W", "A" or "").
func (t SeatType) String() string { return defaultCatalog.SeatTypeCode(t) }
