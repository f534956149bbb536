package units

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks any violated input invariant: a non-positive
// quantity, an out-of-range rate, a malformed range, a bad cash-flow
// period. Callers test for it with errors.Is; it is never retried and no
// partial result accompanies it.
var ErrInvalidInput = errors.New("invalid input")

// Positive fails unless v > 0.
func Positive(name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be > 0 (got %v)", ErrInvalidInput, name, v)
	}
	return nil
}

// NonNegative fails unless v >= 0.
func NonNegative(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must be >= 0 (got %v)", ErrInvalidInput, name, v)
	}
	return nil
}

// InUnitInterval fails unless v lies in [0, 1].
func InUnitInterval(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be in [0, 1] (got %v)", ErrInvalidInput, name, v)
	}
	return nil
}

// PositiveInt fails unless v > 0.
func PositiveInt(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be a positive integer (got %d)", ErrInvalidInput, name, v)
	}
	return nil
}
