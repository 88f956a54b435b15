package layer

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when a vector's length does not match the
// width a unit or layer expects. Inputs are never truncated or padded.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionError reports the operation and the sizes involved in a mismatch.
type DimensionError struct {
	Op   string
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: got length %d, want %d: %v", e.Op, e.Got, e.Want, ErrDimensionMismatch)
}

// Unwrap lets errors.Is match ErrDimensionMismatch.
func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

func checkLen(op string, v []float64, want int) error {
	if len(v) != want {
		return &DimensionError{Op: op, Got: len(v), Want: want}
	}
	return nil
}
