// Package repository persists check-ins to MySQL.
package repository

import "errors"

// ErrConflict is returned when a write collides with existing rows, such as
// a seat label already stored for the flight.  Handlers translate it into
// HTTP 409.
var ErrConflict = errors.New("conflict")
