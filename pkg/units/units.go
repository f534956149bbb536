// Package units defines the tagged scalar types shared by every regrind
// component. Each quantity gets its own defined type so that cross-unit
// arithmetic (adding kilograms to kilometers, say) cannot slip through a
// review as a bare float64 expression.
package units

import "math"

// Kilograms is a mass in kg.
type Kilograms float64

// Kilometers is a distance in km.
type Kilometers float64

// Miles is a distance in statute miles.
type Miles float64

// USD is a monetary amount in US dollars.
type USD float64

// TonsCO2e is an emissions quantity in metric tons of CO2 equivalent.
type TonsCO2e float64

// Hours is an elapsed duration in hours.
type Hours float64

// Fraction is a dimensionless value expected to lie in [0, 1].
type Fraction float64

// Epsilon is the tolerance used to absorb floating-point drift when
// expanding ranges and comparing computed quantities.
const Epsilon = 1e-9

// Round6 rounds v to six decimal places. Axis values and reported deltas
// are rounded to this fixed precision so repeated runs compare byte-equal.
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
