package sweep

import (
	"fmt"
	"math"

	"github.com/aggcycle/regrind/pkg/units"
)

// RangeKind constrains the values a NumericRange may produce.
type RangeKind string

const (
	// RangePositive requires every value to be > 0.
	RangePositive RangeKind = "positive"
	// RangeUnitInterval requires every value to lie in [0, 1].
	RangeUnitInterval RangeKind = "unit-interval"
)

// NumericRange is an inclusive start/end range walked in fixed steps.
type NumericRange struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Step  float64 `json:"step" yaml:"step"`
}

// Validate checks the range shape and its kind constraint.
func (r NumericRange) Validate(name string, kind RangeKind) error {
	if r.Step <= 0 {
		return fmt.Errorf("%w: %s.step must be > 0 (got %v)", units.ErrInvalidInput, name, r.Step)
	}
	if r.End < r.Start {
		return fmt.Errorf("%w: %s.end must be >= start (got start=%v end=%v)",
			units.ErrInvalidInput, name, r.Start, r.End)
	}
	switch kind {
	case RangePositive:
		if r.Start <= 0 {
			return fmt.Errorf("%w: %s values must be > 0 (got start=%v)", units.ErrInvalidInput, name, r.Start)
		}
	case RangeUnitInterval:
		if r.Start < 0 || r.End > 1 {
			return fmt.Errorf("%w: %s values must be in [0, 1] (got start=%v end=%v)",
				units.ErrInvalidInput, name, r.Start, r.End)
		}
	}
	return nil
}

// stepCount returns the number of values the stepped walk visits (before
// the end value is appended), computed arithmetically so an oversized
// range can be rejected without materializing it.
func (r NumericRange) stepCount() int {
	n := math.Floor((r.End-r.Start)/r.Step + units.Epsilon)
	if n >= float64(math.MaxInt32) {
		return math.MaxInt32
	}
	return int(n) + 1
}

// Expand generates start, start+step, ... while the next value does not
// exceed end (with a small epsilon absorbing floating-point drift in the
// step count), then appends the true end if it was not already reached.
// Values are rounded to six decimals so repeated runs compare byte-equal.
func (r NumericRange) Expand() []float64 {
	var values []float64
	for i := 0; ; i++ {
		v := r.Start + float64(i)*r.Step
		if v > r.End+units.Epsilon {
			break
		}
		values = append(values, units.Round6(v))
	}
	end := units.Round6(r.End)
	if len(values) == 0 || math.Abs(values[len(values)-1]-end) > units.Epsilon {
		values = append(values, end)
	}

	deduped := values[:1]
	for _, v := range values[1:] {
		if math.Abs(v-deduped[len(deduped)-1]) > units.Epsilon {
			deduped = append(deduped, v)
		}
	}
	return deduped
}
