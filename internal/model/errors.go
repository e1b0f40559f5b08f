package model

import "errors"

// ErrUnknownCategory is returned when a travel class or seat type token does
// not match any entry of the catalog.
var ErrUnknownCategory = errors.New("unknown category")
