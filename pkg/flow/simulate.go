package flow

import (
	"fmt"
	"math"

	"github.com/aggcycle/regrind/pkg/units"
)

// Simulate runs one batch through the haul-and-process model and returns
// the cost, time, emissions, trip, and recovery totals.
//
// The function is purely functional of its inputs: the sensitivity sweep
// calls it once per grid cell per side, so it allocates nothing beyond the
// returned value struct.
func Simulate(uow UnitOfWork, costs CostDrivers, sust SustainabilityDrivers, opts Options) (Result, error) {
	if err := validate(uow, costs, sust, opts); err != nil {
		return Result{}, err
	}

	speed := DefaultTruckSpeedKmh
	if opts.TruckSpeedKmh != nil {
		speed = *opts.TruckSpeedKmh
	}
	loadUnload := DefaultLoadUnloadHoursPerTrip
	if opts.LoadUnloadHoursPerTrip != nil {
		loadUnload = *opts.LoadUnloadHoursPerTrip
	}

	var (
		processingCostPerKg      units.USD
		processingEmissionsPerKg units.TonsCO2e
		throughput               units.Kilograms
		recoveryRate             units.Fraction
	)
	if opts.Mode == ModeGrinder {
		processingCostPerKg = costs.GrinderCostPerKg
		processingEmissionsPerKg = sust.GrinderEmissionsPerKg
		throughput = costs.GrinderThroughputKgPerHour
		recoveryRate = sust.GrinderRecoveryRate
	} else {
		processingCostPerKg = costs.CrusherCostPerKg
		processingEmissionsPerKg = sust.CrusherEmissionsPerKg
		throughput = costs.CrusherThroughputKgPerHour
		recoveryRate = sust.CrusherRecoveryRate
	}

	inbound := float64(uow.InboundMaterialKg)

	// A partial final load still consumes a full trip.
	trips := int(math.Ceil(inbound / float64(costs.TruckCapacityKg)))

	totalDistance := float64(trips) * float64(uow.HaulDistancePerTripKm)
	haulTime := totalDistance/speed + float64(trips)*loadUnload
	processingTime := inbound / float64(throughput)
	totalTime := haulTime + processingTime

	totalCost := totalDistance*float64(costs.HaulCostPerKm) +
		inbound*float64(processingCostPerKg) +
		totalTime*float64(costs.LaborCostPerHour)

	totalEmissions := totalDistance*float64(sust.HaulEmissionsPerKm) +
		inbound*float64(processingEmissionsPerKg)

	return Result{
		TotalCostUSD:           units.USD(totalCost),
		TotalTimeHours:         units.Hours(totalTime),
		TotalEmissionsTonsCO2e: units.TonsCO2e(totalEmissions),
		TruckTrips:             trips,
		MaterialRecoveredKg:    units.Kilograms(inbound * float64(recoveryRate)),
	}, nil
}

func validate(uow UnitOfWork, costs CostDrivers, sust SustainabilityDrivers, opts Options) error {
	if opts.Mode != ModeCrusher && opts.Mode != ModeGrinder {
		return fmt.Errorf("%w: mode must be %q or %q (got %q)",
			units.ErrInvalidInput, ModeCrusher, ModeGrinder, opts.Mode)
	}
	if err := units.Positive("inbound_material_kg", float64(uow.InboundMaterialKg)); err != nil {
		return err
	}
	if err := units.Positive("haul_distance_per_trip_km", float64(uow.HaulDistancePerTripKm)); err != nil {
		return err
	}
	if err := units.Positive("truck_capacity_kg", float64(costs.TruckCapacityKg)); err != nil {
		return err
	}
	if err := units.NonNegative("haul_cost_per_km", float64(costs.HaulCostPerKm)); err != nil {
		return err
	}
	if err := units.NonNegative("labor_cost_per_hour", float64(costs.LaborCostPerHour)); err != nil {
		return err
	}
	if err := units.NonNegative("crusher_cost_per_kg", float64(costs.CrusherCostPerKg)); err != nil {
		return err
	}
	if err := units.NonNegative("grinder_cost_per_kg", float64(costs.GrinderCostPerKg)); err != nil {
		return err
	}
	if err := units.NonNegative("haul_emissions_per_km", float64(sust.HaulEmissionsPerKm)); err != nil {
		return err
	}
	if err := units.NonNegative("crusher_emissions_per_kg", float64(sust.CrusherEmissionsPerKg)); err != nil {
		return err
	}
	if err := units.NonNegative("grinder_emissions_per_kg", float64(sust.GrinderEmissionsPerKg)); err != nil {
		return err
	}
	if err := units.InUnitInterval("crusher_recovery_rate", float64(sust.CrusherRecoveryRate)); err != nil {
		return err
	}
	if err := units.InUnitInterval("grinder_recovery_rate", float64(sust.GrinderRecoveryRate)); err != nil {
		return err
	}

	// Only the throughput selected by the active mode must be positive.
	if opts.Mode == ModeGrinder {
		if err := units.Positive("grinder_throughput_kg_per_hour", float64(costs.GrinderThroughputKgPerHour)); err != nil {
			return err
		}
	} else {
		if err := units.Positive("crusher_throughput_kg_per_hour", float64(costs.CrusherThroughputKgPerHour)); err != nil {
			return err
		}
	}

	if opts.TruckSpeedKmh != nil {
		if err := units.Positive("truck_speed_kmh", *opts.TruckSpeedKmh); err != nil {
			return err
		}
	}
	if opts.LoadUnloadHoursPerTrip != nil {
		if err := units.Positive("load_unload_hours_per_trip", *opts.LoadUnloadHoursPerTrip); err != nil {
			return err
		}
	}
	return nil
}
