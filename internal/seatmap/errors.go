package seatmap

import (
	"errors"

	"github.com/iliyamo/flight-checkin/internal/model"
)

var (
	// ErrFileNotFound is returned when a seat map or manifest file cannot be opened.
	ErrFileNotFound = errors.New("file not found")
	// ErrFormat is returned for malformed input.  Nothing is built from a
	// malformed file.
	ErrFormat = errors.New("malformed input")
	// ErrUnknownCategory is returned for class or seat type tokens the
	// catalog does not know.
	ErrUnknownCategory = model.ErrUnknownCategory
)
