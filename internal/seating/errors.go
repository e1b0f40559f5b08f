package seating

import "errors"

var (
	// ErrOverbooked reports that the class had fewer free seats than the
	// party had members.  Some travelers may still have been seated.
	ErrOverbooked = errors.New("overbooked")
	// ErrSeatUnavailable reports that a requested seat label does not exist
	// in the class or is already taken.
	ErrSeatUnavailable = errors.New("seat unavailable")
	// ErrInvalidWeights is returned by Weights.Validate.
	ErrInvalidWeights = errors.New("invalid penalty weights")
	// ErrDuplicateSeatID is returned when a cabin lists the same seat id twice.
	ErrDuplicateSeatID = errors.New("duplicate seat id")
	// ErrDuplicateSeatLabel is returned when a cabin lists the same seat
	// label twice.  Labels compare case-insensitively.
	ErrDuplicateSeatLabel = errors.New("duplicate seat label")
	// ErrDuplicateClass is returned when a flight defines a class twice.
	ErrDuplicateClass = errors.New("duplicate travel class")
)
