// Package kpi derives environmental key-performance indicators from a
// simulation result: emissions avoided net of operations, carbon-capture
// potential of the recovered material, and truck miles avoided against a
// baseline haul profile.
package kpi

import (
	"math"

	"github.com/aggcycle/regrind/pkg/assume"
	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/units"
)

// Factors are the emission and haul factors the KPI formulas run on.
type Factors struct {
	CO2AvoidedPerKgRecovered             units.TonsCO2e `json:"co2_avoided_per_kg_recovered"`
	CarbonCapturePotentialPerKgRecovered units.TonsCO2e `json:"carbon_capture_potential_per_kg_recovered"`
	BaselineTruckMilesPerTrip            units.Miles    `json:"baseline_truck_miles_per_trip"`
	OptimizedTruckMilesPerTrip           units.Miles    `json:"optimized_truck_miles_per_trip"`
}

// Overrides optionally replace individual default factors. Nil fields
// keep the default.
type Overrides struct {
	CO2AvoidedPerKgRecovered             *float64 `json:"co2_avoided_per_kg_recovered,omitempty" yaml:"co2_avoided_per_kg_recovered,omitempty"`
	CarbonCapturePotentialPerKgRecovered *float64 `json:"carbon_capture_potential_per_kg_recovered,omitempty" yaml:"carbon_capture_potential_per_kg_recovered,omitempty"`
	BaselineTruckMilesPerTrip            *float64 `json:"baseline_truck_miles_per_trip,omitempty" yaml:"baseline_truck_miles_per_trip,omitempty"`
	OptimizedTruckMilesPerTrip           *float64 `json:"optimized_truck_miles_per_trip,omitempty" yaml:"optimized_truck_miles_per_trip,omitempty"`
}

// Documented default factor set.
const (
	DefaultCO2AvoidedPerKgRecovered             = 0.0009
	DefaultCarbonCapturePotentialPerKgRecovered = 0.00002
	DefaultBaselineTruckMilesPerTrip            = 25.0
	DefaultOptimizedTruckMilesPerTrip           = 10.0
)

// DefaultFactors returns the documented default factor set.
func DefaultFactors() Factors {
	return Factors{
		CO2AvoidedPerKgRecovered:             DefaultCO2AvoidedPerKgRecovered,
		CarbonCapturePotentialPerKgRecovered: DefaultCarbonCapturePotentialPerKgRecovered,
		BaselineTruckMilesPerTrip:            DefaultBaselineTruckMilesPerTrip,
		OptimizedTruckMilesPerTrip:           DefaultOptimizedTruckMilesPerTrip,
	}
}

// Resolve fills unspecified override fields from the defaults, recording
// each resolution in the trace.
func Resolve(o Overrides, trace *assume.Trace) Factors {
	return Factors{
		CO2AvoidedPerKgRecovered:             units.TonsCO2e(trace.Float("co2_avoided_per_kg_recovered", o.CO2AvoidedPerKgRecovered, DefaultCO2AvoidedPerKgRecovered)),
		CarbonCapturePotentialPerKgRecovered: units.TonsCO2e(trace.Float("carbon_capture_potential_per_kg_recovered", o.CarbonCapturePotentialPerKgRecovered, DefaultCarbonCapturePotentialPerKgRecovered)),
		BaselineTruckMilesPerTrip:            units.Miles(trace.Float("baseline_truck_miles_per_trip", o.BaselineTruckMilesPerTrip, DefaultBaselineTruckMilesPerTrip)),
		OptimizedTruckMilesPerTrip:           units.Miles(trace.Float("optimized_truck_miles_per_trip", o.OptimizedTruckMilesPerTrip, DefaultOptimizedTruckMilesPerTrip)),
	}
}

func (f Factors) validate() error {
	if err := units.NonNegative("co2_avoided_per_kg_recovered", float64(f.CO2AvoidedPerKgRecovered)); err != nil {
		return err
	}
	if err := units.NonNegative("carbon_capture_potential_per_kg_recovered", float64(f.CarbonCapturePotentialPerKgRecovered)); err != nil {
		return err
	}
	if err := units.NonNegative("baseline_truck_miles_per_trip", float64(f.BaselineTruckMilesPerTrip)); err != nil {
		return err
	}
	return units.NonNegative("optimized_truck_miles_per_trip", float64(f.OptimizedTruckMilesPerTrip))
}

// ComputeCO2Avoided returns the net avoided emissions of a run, floored at
// zero: operational emissions exceeding the gross avoided figure never
// report a negative result.
func ComputeCO2Avoided(res flow.Result, f Factors) (units.TonsCO2e, error) {
	if err := f.validate(); err != nil {
		return 0, err
	}
	gross := float64(res.MaterialRecoveredKg) * float64(f.CO2AvoidedPerKgRecovered)
	return units.TonsCO2e(math.Max(0, gross-float64(res.TotalEmissionsTonsCO2e))), nil
}

// ComputeCarbonCapturePotential returns the capture potential of the
// recovered material.
func ComputeCarbonCapturePotential(res flow.Result, f Factors) (units.TonsCO2e, error) {
	if err := f.validate(); err != nil {
		return 0, err
	}
	return units.TonsCO2e(float64(res.MaterialRecoveredKg) * float64(f.CarbonCapturePotentialPerKgRecovered)), nil
}

// ComputeTruckMilesAvoided returns the haul miles saved over the run's
// trips when the optimized route is shorter than the baseline.
func ComputeTruckMilesAvoided(res flow.Result, f Factors) (units.Miles, error) {
	if err := f.validate(); err != nil {
		return 0, err
	}
	perTrip := math.Max(0, float64(f.BaselineTruckMilesPerTrip)-float64(f.OptimizedTruckMilesPerTrip))
	return units.Miles(float64(res.TruckTrips) * perTrip), nil
}
