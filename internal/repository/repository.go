package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Callers use
// errors.Is to tell "absent" apart from a store failure.
var ErrNotFound = errors.New("not found")
