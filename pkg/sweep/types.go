// Package sweep runs the crusher-versus-grinder sensitivity grid: it
// expands the haul-distance, reuse-uptake, and grinder axes into discrete
// values, simulates the baseline (crusher) and scenario (grinder) process
// at every grid point, and layers disposal, virgin-aggregate, and optional
// expedite-penalty accounting on top of each simulation pair.
package sweep

import (
	"errors"
	"fmt"

	"github.com/aggcycle/regrind/pkg/assume"
	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/units"
)

// MaxGridPoints bounds the Cartesian product of the three axes. It is the
// engine's only admission control and is enforced before any simulation
// work begins.
const MaxGridPoints = 2500

// ErrGridTooLarge marks a request whose axis product exceeds MaxGridPoints.
var ErrGridTooLarge = errors.New("sensitivity grid too large")

// GrinderAxisKind says how the grinder axis is expressed.
type GrinderAxisKind string

const (
	// GrinderAxisUtilization sweeps a fraction of the nominal grinder
	// throughput.
	GrinderAxisUtilization GrinderAxisKind = "utilization"
	// GrinderAxisThroughput sweeps absolute throughput in kg/h.
	GrinderAxisThroughput GrinderAxisKind = "throughput"
)

// GrinderAxis is the sweep's grinder control variable. Exactly one of the
// two ranges must be set.
type GrinderAxis struct {
	Utilization *NumericRange `json:"utilization,omitempty" yaml:"utilization,omitempty"`
	Throughput  *NumericRange `json:"throughput,omitempty" yaml:"throughput,omitempty"`
}

// Kind reports which range is set.
func (a GrinderAxis) Kind() GrinderAxisKind {
	if a.Throughput != nil {
		return GrinderAxisThroughput
	}
	return GrinderAxisUtilization
}

func (a GrinderAxis) validate() error {
	if (a.Utilization == nil) == (a.Throughput == nil) {
		return fmt.Errorf("%w: grinder axis requires exactly one of utilization or throughput",
			units.ErrInvalidInput)
	}
	if a.Utilization != nil {
		return a.Utilization.Validate("grinder_axis.utilization", RangeUnitInterval)
	}
	return a.Throughput.Validate("grinder_axis.throughput", RangePositive)
}

// Axes are the three swept dimensions.
type Axes struct {
	HaulDistanceKm  NumericRange `json:"haul_distance_km" yaml:"haul_distance_km"`
	ReuseUptakeRate NumericRange `json:"reuse_uptake_rate" yaml:"reuse_uptake_rate"`
	Grinder         GrinderAxis  `json:"grinder" yaml:"grinder"`
}

// Assumptions are the planning constants of the disposal and
// virgin-aggregate accounting. Nil fields resolve to the documented
// defaults and every resolution is recorded in the result's trace.
type Assumptions struct {
	VirginAggregateCostPerKg      *float64 `json:"virgin_aggregate_cost_per_kg,omitempty" yaml:"virgin_aggregate_cost_per_kg,omitempty"`
	VirginAggregateEmissionsPerKg *float64 `json:"virgin_aggregate_emissions_per_kg,omitempty" yaml:"virgin_aggregate_emissions_per_kg,omitempty"`
	LandfillDisposalCostPerKg     *float64 `json:"landfill_disposal_cost_per_kg,omitempty" yaml:"landfill_disposal_cost_per_kg,omitempty"`
	GrinderCapitalCostUSD         *float64 `json:"grinder_capital_cost_usd,omitempty" yaml:"grinder_capital_cost_usd,omitempty"`
	RunsPerDay                    *float64 `json:"runs_per_day,omitempty" yaml:"runs_per_day,omitempty"`
}

// Documented assumption defaults.
const (
	DefaultVirginAggregateCostPerKg      = 0.012
	DefaultVirginAggregateEmissionsPerKg = 0.00006
	DefaultLandfillDisposalCostPerKg     = 0.055
	DefaultGrinderCapitalCostUSD         = 240000.0
	DefaultRunsPerDay                    = 1.0
)

type resolvedAssumptions struct {
	virginCostPerKg      float64
	virginEmissionsPerKg float64
	landfillCostPerKg    float64
	grinderCapitalUSD    float64
	runsPerDay           float64
}

func (a Assumptions) resolve(trace *assume.Trace) resolvedAssumptions {
	return resolvedAssumptions{
		virginCostPerKg:      trace.Float("virgin_aggregate_cost_per_kg", a.VirginAggregateCostPerKg, DefaultVirginAggregateCostPerKg),
		virginEmissionsPerKg: trace.Float("virgin_aggregate_emissions_per_kg", a.VirginAggregateEmissionsPerKg, DefaultVirginAggregateEmissionsPerKg),
		landfillCostPerKg:    trace.Float("landfill_disposal_cost_per_kg", a.LandfillDisposalCostPerKg, DefaultLandfillDisposalCostPerKg),
		grinderCapitalUSD:    trace.Float("grinder_capital_cost_usd", a.GrinderCapitalCostUSD, DefaultGrinderCapitalCostUSD),
		runsPerDay:           trace.Float("runs_per_day", a.RunsPerDay, DefaultRunsPerDay),
	}
}

func (a resolvedAssumptions) validate() error {
	if err := units.NonNegative("virgin_aggregate_cost_per_kg", a.virginCostPerKg); err != nil {
		return err
	}
	if err := units.NonNegative("virgin_aggregate_emissions_per_kg", a.virginEmissionsPerKg); err != nil {
		return err
	}
	if err := units.NonNegative("landfill_disposal_cost_per_kg", a.landfillCostPerKg); err != nil {
		return err
	}
	if err := units.NonNegative("grinder_capital_cost_usd", a.grinderCapitalUSD); err != nil {
		return err
	}
	return units.Positive("runs_per_day", a.runsPerDay)
}

// Request is one full sweep invocation. TraceID is caller-supplied (or
// filled by the API layer); the engine echoes it so identical inputs yield
// byte-identical output.
type Request struct {
	TraceID               string                     `json:"trace_id" yaml:"trace_id"`
	UnitOfWork            flow.UnitOfWork            `json:"unit_of_work" yaml:"unit_of_work"`
	CostDrivers           flow.CostDrivers           `json:"cost_drivers" yaml:"cost_drivers"`
	SustainabilityDrivers flow.SustainabilityDrivers `json:"sustainability_drivers" yaml:"sustainability_drivers"`
	Axes                  Axes                       `json:"axes" yaml:"axes"`
	Assumptions           Assumptions                `json:"assumptions" yaml:"assumptions"`
	Penalty               ExpeditePenalty            `json:"expedite_penalty" yaml:"expedite_penalty"`
}

// PlotPoint is one grid cell's reported outcome.
type PlotPoint struct {
	HaulDistanceKm           float64  `json:"haul_distance_km"`
	ReuseUptakeRate          float64  `json:"reuse_uptake_rate"`
	GrinderAxisValue         float64  `json:"grinder_axis_value"`
	CostDeltaUSD             float64  `json:"cost_delta_usd"`
	EmissionsAvoidedTonsCO2e float64  `json:"emissions_avoided_tons_co2e"`
	PaybackDays              *float64 `json:"payback_days"`
}

// SideBreakdown is the full accounting of one side (baseline or scenario)
// of a grid cell.
type SideBreakdown struct {
	Simulation                 flow.Result `json:"simulation"`
	ResidualKg                 float64     `json:"residual_kg"`
	ReuseKg                    float64     `json:"reuse_kg"`
	LandfillKg                 float64     `json:"landfill_kg"`
	DisposalTrips              int         `json:"disposal_trips"`
	DisposalDistanceKm         float64     `json:"disposal_distance_km"`
	DisposalHaulCostUSD        float64     `json:"disposal_haul_cost_usd"`
	DisposalEmissionsTonsCO2e  float64     `json:"disposal_emissions_tons_co2e"`
	LandfillCostUSD            float64     `json:"landfill_cost_usd"`
	VirginAggregateKg          float64     `json:"virgin_aggregate_kg"`
	VirginCostUSD              float64     `json:"virgin_cost_usd"`
	VirginEmissionsTonsCO2e    float64     `json:"virgin_emissions_tons_co2e"`
	PenaltyCostUSD             float64     `json:"penalty_cost_usd"`
	PenaltyEmissionsTonsCO2e   float64     `json:"penalty_emissions_tons_co2e"`
	TotalCostUSD               float64     `json:"total_cost_usd"`
	TotalEmissionsTonsCO2e     float64     `json:"total_emissions_tons_co2e"`
}

// PointDiagnostics is the audit channel for one grid cell: the complete
// baseline and scenario breakdowns behind the reported deltas.
type PointDiagnostics struct {
	Point    PlotPoint     `json:"point"`
	Baseline SideBreakdown `json:"baseline"`
	Scenario SideBreakdown `json:"scenario"`
}

// Result is the full sweep output.
type Result struct {
	TraceID           string             `json:"trace_id"`
	HaulDistanceAxis  []float64          `json:"haul_distance_axis"`
	ReuseRateAxis     []float64          `json:"reuse_rate_axis"`
	GrinderAxisKind   GrinderAxisKind    `json:"grinder_axis_kind"`
	GrinderAxisValues []float64          `json:"grinder_axis_values"`
	Points            []PlotPoint        `json:"points"`
	Diagnostics       []PointDiagnostics `json:"diagnostics"`
	AssumptionsUsed   []assume.Applied   `json:"assumptions_used"`
}
