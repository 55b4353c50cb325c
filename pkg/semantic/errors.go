package semantic

import "errors"

// ErrNilUnit is returned when resolution is requested for a nil unit.
var ErrNilUnit = errors.New("nil unit")
