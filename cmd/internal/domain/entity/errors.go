package entity

import "errors"

// ErrNotFound is returned by every record store when no record carries
// the requested id.
var ErrNotFound = errors.New("record not found")
