package service

import "errors"

var (
	// ErrFlightNotFound is returned for flight numbers that were never
	// registered.
	ErrFlightNotFound = errors.New("flight not found")
	// ErrDuplicateFlight is returned when a flight number is registered twice.
	ErrDuplicateFlight = errors.New("flight already registered")
	// ErrUnknownClass is returned for travel class values outside the catalog.
	ErrUnknownClass = errors.New("unknown travel class")
)
