package sweep

import (
	"fmt"
	"math"

	"github.com/aggcycle/regrind/pkg/assume"
	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/units"
)

// Run expands the request's axes, enforces the grid cap, and computes the
// full grid of baseline-versus-scenario outcomes. Enumeration order is
// haul distance outer, reuse rate middle, grinder axis inner; points are
// mutually independent and the computation reads no clock and no
// randomness, so identical requests produce identical results.
func Run(req Request) (*Result, error) {
	if err := req.Axes.HaulDistanceKm.Validate("axes.haul_distance_km", RangePositive); err != nil {
		return nil, err
	}
	if err := req.Axes.ReuseUptakeRate.Validate("axes.reuse_uptake_rate", RangeUnitInterval); err != nil {
		return nil, err
	}
	if err := req.Axes.Grinder.validate(); err != nil {
		return nil, err
	}

	var trace assume.Trace
	assumptions := req.Assumptions.resolve(&trace)
	if err := assumptions.validate(); err != nil {
		return nil, err
	}
	penalty := req.Penalty.resolve(&trace)
	if err := penalty.validate(); err != nil {
		return nil, err
	}

	var grinderRange NumericRange
	if req.Axes.Grinder.Kind() == GrinderAxisThroughput {
		grinderRange = *req.Axes.Grinder.Throughput
	} else {
		grinderRange = *req.Axes.Grinder.Utilization
	}

	// Admission control runs in two stages, both before any simulation.
	// Axis cardinalities are checked arithmetically first, so a degenerate
	// range (tiny step over a wide span) is rejected before its values are
	// materialized; the exact grid size is checked after expansion.
	for _, ax := range []struct {
		name string
		r    NumericRange
	}{
		{"axes.haul_distance_km", req.Axes.HaulDistanceKm},
		{"axes.reuse_uptake_rate", req.Axes.ReuseUptakeRate},
		{"axes.grinder", grinderRange},
	} {
		if n := ax.r.stepCount(); n > MaxGridPoints {
			return nil, fmt.Errorf("%w: %s has %d values, more than the %d-point limit",
				ErrGridTooLarge, ax.name, n, MaxGridPoints)
		}
	}

	haulAxis := req.Axes.HaulDistanceKm.Expand()
	reuseAxis := req.Axes.ReuseUptakeRate.Expand()
	grinderAxis := grinderRange.Expand()

	gridSize := len(haulAxis) * len(reuseAxis) * len(grinderAxis)
	if gridSize > MaxGridPoints {
		return nil, fmt.Errorf("%w: %d points exceeds the %d-point limit",
			ErrGridTooLarge, gridSize, MaxGridPoints)
	}

	res := &Result{
		TraceID:           req.TraceID,
		HaulDistanceAxis:  haulAxis,
		ReuseRateAxis:     reuseAxis,
		GrinderAxisKind:   req.Axes.Grinder.Kind(),
		GrinderAxisValues: grinderAxis,
		Points:            make([]PlotPoint, 0, gridSize),
		Diagnostics:       make([]PointDiagnostics, 0, gridSize),
		AssumptionsUsed:   trace.Applied(),
	}

	for _, haulKm := range haulAxis {
		for _, reuseRate := range reuseAxis {
			for _, grinderValue := range grinderAxis {
				diag, err := computePoint(req, assumptions, penalty, haulKm, reuseRate, grinderValue)
				if err != nil {
					return nil, err
				}
				res.Points = append(res.Points, diag.Point)
				res.Diagnostics = append(res.Diagnostics, diag)
			}
		}
	}
	return res, nil
}

// computePoint evaluates one grid cell: a crusher baseline and a grinder
// scenario at the cell's haul distance, with disposal, virgin-aggregate,
// and penalty accounting layered on each side.
func computePoint(req Request, a resolvedAssumptions, p resolvedPenalty, haulKm, reuseRate, grinderValue float64) (PointDiagnostics, error) {
	uow := req.UnitOfWork
	uow.HaulDistancePerTripKm = units.Kilometers(haulKm)

	costs := req.CostDrivers
	if req.Axes.Grinder.Kind() == GrinderAxisUtilization {
		costs.GrinderThroughputKgPerHour = units.Kilograms(grinderValue * float64(req.CostDrivers.GrinderThroughputKgPerHour))
	} else {
		costs.GrinderThroughputKgPerHour = units.Kilograms(grinderValue)
	}

	baseSim, err := flow.Simulate(uow, costs, req.SustainabilityDrivers, flow.Options{Mode: flow.ModeCrusher})
	if err != nil {
		return PointDiagnostics{}, err
	}
	scenSim, err := flow.Simulate(uow, costs, req.SustainabilityDrivers, flow.Options{Mode: flow.ModeGrinder})
	if err != nil {
		return PointDiagnostics{}, err
	}

	inbound := float64(req.UnitOfWork.InboundMaterialKg)
	truckCapacity := float64(req.CostDrivers.TruckCapacityKg)
	haulCostPerKm := float64(req.CostDrivers.HaulCostPerKm)
	haulEmisPerKm := float64(req.SustainabilityDrivers.HaulEmissionsPerKm)

	// Baseline: every residual kilogram is landfilled and every inbound
	// kilogram of demand is met with virgin aggregate.
	baseline := sideAccounting(baseSim, a, haulKm, haulCostPerKm, haulEmisPerKm, truckCapacity, sideInputs{
		residualKg: math.Max(0, inbound-float64(baseSim.MaterialRecoveredKg)),
		reuseKg:    0,
		virginKg:   inbound,
	})

	// Scenario: reused residual displaces both landfill mass and virgin
	// aggregate demand.
	scenResidual := math.Max(0, inbound-float64(scenSim.MaterialRecoveredKg))
	scenReuse := scenResidual * reuseRate
	scenario := sideAccounting(scenSim, a, haulKm, haulCostPerKm, haulEmisPerKm, truckCapacity, sideInputs{
		residualKg: scenResidual,
		reuseKg:    scenReuse,
		virginKg:   math.Max(0, inbound-scenReuse),
	})

	penaltyCost, penaltyEmissions := p.apply(haulKm)
	scenario.PenaltyCostUSD = penaltyCost
	scenario.PenaltyEmissionsTonsCO2e = penaltyEmissions
	scenario.TotalCostUSD += penaltyCost
	scenario.TotalEmissionsTonsCO2e += penaltyEmissions

	point := PlotPoint{
		HaulDistanceKm:           haulKm,
		ReuseUptakeRate:          reuseRate,
		GrinderAxisValue:         grinderValue,
		CostDeltaUSD:             scenario.TotalCostUSD - baseline.TotalCostUSD,
		EmissionsAvoidedTonsCO2e: baseline.TotalEmissionsTonsCO2e - scenario.TotalEmissionsTonsCO2e,
	}

	dailySavings := (baseline.TotalCostUSD - scenario.TotalCostUSD) * a.runsPerDay
	if dailySavings > 0 {
		payback := a.grinderCapitalUSD / dailySavings
		point.PaybackDays = &payback
	}

	return PointDiagnostics{Point: point, Baseline: baseline, Scenario: scenario}, nil
}

type sideInputs struct {
	residualKg float64
	reuseKg    float64
	virginKg   float64
}

// sideAccounting layers disposal hauling, landfill fees, and virgin
// aggregate on one side's simulation. Disposal trips use the same truck
// capacity and per-km rates as the main haul.
func sideAccounting(sim flow.Result, a resolvedAssumptions, haulKm, haulCostPerKm, haulEmisPerKm, truckCapacity float64, in sideInputs) SideBreakdown {
	landfillKg := math.Max(0, in.residualKg-in.reuseKg)

	disposalTrips := 0
	if landfillKg > 0 {
		disposalTrips = int(math.Ceil(landfillKg / truckCapacity))
	}
	disposalDistance := float64(disposalTrips) * haulKm

	side := SideBreakdown{
		Simulation:                sim,
		ResidualKg:                in.residualKg,
		ReuseKg:                   in.reuseKg,
		LandfillKg:                landfillKg,
		DisposalTrips:             disposalTrips,
		DisposalDistanceKm:        disposalDistance,
		DisposalHaulCostUSD:       disposalDistance * haulCostPerKm,
		DisposalEmissionsTonsCO2e: disposalDistance * haulEmisPerKm,
		LandfillCostUSD:           landfillKg * a.landfillCostPerKg,
		VirginAggregateKg:         in.virginKg,
		VirginCostUSD:             in.virginKg * a.virginCostPerKg,
		VirginEmissionsTonsCO2e:   in.virginKg * a.virginEmissionsPerKg,
	}

	side.TotalCostUSD = float64(sim.TotalCostUSD) + side.DisposalHaulCostUSD + side.LandfillCostUSD + side.VirginCostUSD
	side.TotalEmissionsTonsCO2e = float64(sim.TotalEmissionsTonsCO2e) + side.DisposalEmissionsTonsCO2e + side.VirginEmissionsTonsCO2e
	return side
}
