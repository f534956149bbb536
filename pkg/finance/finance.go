// Package finance evaluates investment decisions over per-period cash-flow
// series: net present value, internal rate of return via bracketed
// bisection, fractional payback period, and a baseline-versus-alternative
// comparison with an incremental series.
//
// IRR and payback can legitimately have no answer (an investment that
// never breaks even, a cash-flow pattern with no sign change). Those
// outcomes are nil results, not errors.
package finance

import (
	"fmt"
	"math"

	"github.com/aggcycle/regrind/pkg/units"
)

const (
	irrBracketLow    = -0.9999
	irrBracketHigh   = 1.0
	irrMaxDoublings  = 20
	irrMaxBisections = 200
	irrTolerance     = 1e-7
)

// NPV discounts the flow series to present value. flows[0] is period 0
// (undiscounted), flows[i] is discounted by (1+rate)^i. A rate at or
// below -1 makes the discount factor non-positive and is rejected.
func NPV(rate float64, flows []float64) (float64, error) {
	if rate <= -1 {
		return 0, fmt.Errorf("%w: discount rate must be > -1 (got %v)", units.ErrInvalidInput, rate)
	}
	total := 0.0
	for i, f := range flows {
		total += f / math.Pow(1+rate, float64(i))
	}
	return total, nil
}

// PaybackPeriod returns the fractional period at which the cumulative cash
// flow first reaches zero, or nil if it never does.
//
// Within the crossing period the recovery is interpolated linearly. If the
// crossing period's own flow is not positive (the cumulative reached zero
// without a proportional contribution) the integer period is returned.
func PaybackPeriod(flows []float64) *float64 {
	if len(flows) == 0 {
		return nil
	}
	cumulative := flows[0]
	if cumulative >= 0 {
		zero := 0.0
		return &zero
	}
	for i := 1; i < len(flows); i++ {
		before := cumulative
		cumulative += flows[i]
		if cumulative >= 0 {
			if flows[i] <= 0 {
				p := float64(i)
				return &p
			}
			p := float64(i-1) + (-before)/flows[i]
			return &p
		}
	}
	return nil
}

// IRR finds the discount rate at which NPV is zero, or nil when the series
// has no sign change or the bracket search cannot straddle a root.
//
// The search starts from the bracket [-0.9999, 1.0] and doubles the upper
// bound up to 20 times looking for an NPV sign change, then bisects for up
// to 200 iterations or until |NPV| < 1e-7. Series with multiple sign
// changes can have several roots; this finder reports the one inside the
// first bracket found, matching the single-swap investment decisions it
// serves.
func IRR(flows []float64) *float64 {
	hasPositive, hasNegative := false, false
	for _, f := range flows {
		if f > 0 {
			hasPositive = true
		}
		if f < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return nil
	}

	npvAt := func(rate float64) float64 {
		total := 0.0
		for i, f := range flows {
			total += f / math.Pow(1+rate, float64(i))
		}
		return total
	}

	low, high := irrBracketLow, irrBracketHigh
	npvLow, npvHigh := npvAt(low), npvAt(high)

	doublings := 0
	for npvLow*npvHigh > 0 && doublings < irrMaxDoublings {
		high *= 2
		npvHigh = npvAt(high)
		doublings++
	}
	if npvLow*npvHigh > 0 {
		return nil
	}

	mid := (low + high) / 2
	for i := 0; i < irrMaxBisections; i++ {
		mid = (low + high) / 2
		npvMid := npvAt(mid)
		if math.Abs(npvMid) < irrTolerance {
			return &mid
		}
		if npvLow*npvMid < 0 {
			high = mid
		} else {
			low = mid
			npvLow = npvMid
		}
	}
	mid = (low + high) / 2
	return &mid
}
