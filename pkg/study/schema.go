package study

import (
	"fmt"

	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/sweep"
)

// ValidateSchema checks the structural correctness of a parsed study
// before any engine work runs. The engines revalidate their own inputs;
// this pass exists to surface every file problem at once instead of
// failing on the first one.
func ValidateSchema(s *Study) *Report {
	r := NewReport()

	validateUnitOfWork(s, r)
	validateCostDrivers(s, r)
	validateSustainability(s, r)
	validateSimulation(s, r)
	validateSweep(s, r)
	validateInvestment(s, r)

	return r
}

func requirePositive(r *Report, path string, v float64) {
	if v <= 0 {
		r.AddError(Result{
			Message:     fmt.Sprintf("%s must be greater than 0", path),
			Path:        path,
			ActualValue: v,
			Expected:    "> 0",
		})
	}
}

func requireNonNegative(r *Report, path string, v float64) {
	if v < 0 {
		r.AddError(Result{
			Message:     fmt.Sprintf("%s must be non-negative", path),
			Path:        path,
			ActualValue: v,
			Expected:    ">= 0",
		})
	}
}

func requireFraction(r *Report, path string, v float64) {
	if v < 0 || v > 1 {
		r.AddError(Result{
			Message:     fmt.Sprintf("%s must lie in [0, 1]", path),
			Path:        path,
			ActualValue: v,
			Expected:    "[0, 1]",
		})
	}
}

func validateUnitOfWork(s *Study, r *Report) {
	requirePositive(r, "unit_of_work.inbound_material_kg", float64(s.UnitOfWork.InboundMaterialKg))
	requirePositive(r, "unit_of_work.haul_distance_per_trip_km", float64(s.UnitOfWork.HaulDistancePerTripKm))
}

func validateCostDrivers(s *Study, r *Report) {
	c := s.CostDrivers
	requirePositive(r, "cost_drivers.truck_capacity_kg", float64(c.TruckCapacityKg))
	requireNonNegative(r, "cost_drivers.haul_cost_per_km", float64(c.HaulCostPerKm))
	requireNonNegative(r, "cost_drivers.labor_cost_per_hour", float64(c.LaborCostPerHour))
	requireNonNegative(r, "cost_drivers.crusher_cost_per_kg", float64(c.CrusherCostPerKg))
	requireNonNegative(r, "cost_drivers.grinder_cost_per_kg", float64(c.GrinderCostPerKg))
	requirePositive(r, "cost_drivers.crusher_throughput_kg_per_hour", float64(c.CrusherThroughputKgPerHour))
	requirePositive(r, "cost_drivers.grinder_throughput_kg_per_hour", float64(c.GrinderThroughputKgPerHour))
}

func validateSustainability(s *Study, r *Report) {
	d := s.SustainabilityDrivers
	requireNonNegative(r, "sustainability_drivers.haul_emissions_per_km", float64(d.HaulEmissionsPerKm))
	requireNonNegative(r, "sustainability_drivers.crusher_emissions_per_kg", float64(d.CrusherEmissionsPerKg))
	requireNonNegative(r, "sustainability_drivers.grinder_emissions_per_kg", float64(d.GrinderEmissionsPerKg))
	requireFraction(r, "sustainability_drivers.crusher_recovery_rate", float64(d.CrusherRecoveryRate))
	requireFraction(r, "sustainability_drivers.grinder_recovery_rate", float64(d.GrinderRecoveryRate))
}

func validateSimulation(s *Study, r *Report) {
	if s.Simulation.Mode != "" && s.Simulation.Mode != flow.ModeCrusher && s.Simulation.Mode != flow.ModeGrinder {
		r.AddError(Result{
			Message:     "simulation.mode must be crusher or grinder",
			Path:        "simulation.mode",
			ActualValue: string(s.Simulation.Mode),
			Expected:    "crusher | grinder",
		})
	}
	if s.Simulation.TruckSpeedKmh != nil {
		requirePositive(r, "simulation.truck_speed_kmh", *s.Simulation.TruckSpeedKmh)
	}
	if s.Simulation.LoadUnloadHoursPerTrip != nil {
		requirePositive(r, "simulation.load_unload_hours_per_trip", *s.Simulation.LoadUnloadHoursPerTrip)
	}
}

func validateSweep(s *Study, r *Report) {
	if s.Sweep == nil {
		return
	}
	axes := s.Sweep.Axes

	if err := axes.HaulDistanceKm.Validate("sweep.axes.haul_distance_km", sweep.RangePositive); err != nil {
		r.AddError(Result{Message: err.Error(), Path: "sweep.axes.haul_distance_km"})
	}
	if err := axes.ReuseUptakeRate.Validate("sweep.axes.reuse_uptake_rate", sweep.RangeUnitInterval); err != nil {
		r.AddError(Result{Message: err.Error(), Path: "sweep.axes.reuse_uptake_rate"})
	}
	if (axes.Grinder.Utilization == nil) == (axes.Grinder.Throughput == nil) {
		r.AddError(Result{
			Message:  "sweep.axes.grinder requires exactly one of utilization or throughput",
			Path:     "sweep.axes.grinder",
			Expected: "utilization xor throughput",
		})
	}

	if s.Sweep.ExpeditePenalty.Enabled {
		r.AddInfo(Result{
			Message: "expedite penalty proxy enabled: a planning assumption, not measured data",
			Path:    "sweep.expedite_penalty.enabled",
		})
	}
}

func validateInvestment(s *Study, r *Report) {
	if s.Investment == nil {
		return
	}
	inv := s.Investment

	if inv.DiscountRate <= -1 {
		r.AddError(Result{
			Message:     "investment.discount_rate must be greater than -1",
			Path:        "investment.discount_rate",
			ActualValue: inv.DiscountRate,
			Expected:    "> -1",
		})
	}

	for _, entry := range []struct {
		side string
		sc   InvestmentScenario
	}{
		{"baseline", inv.Baseline},
		{"alternative", inv.Alternative},
	} {
		side, sc := entry.side, entry.sc
		if sc.Mode != flow.ModeCrusher && sc.Mode != flow.ModeGrinder {
			r.AddError(Result{
				Message:     fmt.Sprintf("investment.%s.mode must be crusher or grinder", side),
				Path:        fmt.Sprintf("investment.%s.mode", side),
				ActualValue: string(sc.Mode),
				Expected:    "crusher | grinder",
			})
		}
		requireNonNegative(r, fmt.Sprintf("investment.%s.initial_investment_usd", side), sc.InitialInvestmentUSD)
		if len(sc.Periods) == 0 {
			r.AddWarning(Result{
				Message: fmt.Sprintf("investment.%s has no periods; its series is just the initial outlay", side),
				Path:    fmt.Sprintf("investment.%s.periods", side),
			})
		}
		for i, p := range sc.Periods {
			if p.Period <= 0 {
				r.AddError(Result{
					Message:     fmt.Sprintf("investment.%s.periods[%d].period must be a positive integer", side, i),
					Path:        fmt.Sprintf("investment.%s.periods[%d].period", side, i),
					ActualValue: p.Period,
					Expected:    ">= 1",
				})
			}
		}
	}
}
