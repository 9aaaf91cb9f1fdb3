package domain

import "errors"

// ErrInvalidMatrix indicates a distance matrix that is ragged, non-square,
// does not match the stop count, or holds unusable entries.
var ErrInvalidMatrix = errors.New("invalid distance matrix")

var ErrStopNotFound = errors.New("stop not found")
var ErrTooManyStops = errors.New("too many stops")
