// Package flow simulates one panel-recovery batch: hauling inbound material
// to the yard, pushing it through the selected processing mode (crusher or
// grinder), and accounting for the cost, elapsed time, emissions, and
// recovered mass of the run.
package flow

import "github.com/aggcycle/regrind/pkg/units"

// Mode selects the processing line for a run.
type Mode string

const (
	ModeCrusher Mode = "crusher"
	ModeGrinder Mode = "grinder"
)

// UnitOfWork is one batch of inbound recyclable material and the one-way
// haul distance per truck trip.
type UnitOfWork struct {
	InboundMaterialKg     units.Kilograms  `json:"inbound_material_kg" yaml:"inbound_material_kg"`
	HaulDistancePerTripKm units.Kilometers `json:"haul_distance_per_trip_km" yaml:"haul_distance_per_trip_km"`
}

// CostDrivers hold the per-unit cost and throughput parameters of the yard.
type CostDrivers struct {
	TruckCapacityKg            units.Kilograms `json:"truck_capacity_kg" yaml:"truck_capacity_kg"`
	HaulCostPerKm              units.USD       `json:"haul_cost_per_km" yaml:"haul_cost_per_km"`
	LaborCostPerHour           units.USD       `json:"labor_cost_per_hour" yaml:"labor_cost_per_hour"`
	CrusherCostPerKg           units.USD       `json:"crusher_cost_per_kg" yaml:"crusher_cost_per_kg"`
	GrinderCostPerKg           units.USD       `json:"grinder_cost_per_kg" yaml:"grinder_cost_per_kg"`
	CrusherThroughputKgPerHour units.Kilograms `json:"crusher_throughput_kg_per_hour" yaml:"crusher_throughput_kg_per_hour"`
	GrinderThroughputKgPerHour units.Kilograms `json:"grinder_throughput_kg_per_hour" yaml:"grinder_throughput_kg_per_hour"`
}

// SustainabilityDrivers hold the emissions factors and recovery rates of
// the haul leg and both processing lines.
type SustainabilityDrivers struct {
	HaulEmissionsPerKm    units.TonsCO2e `json:"haul_emissions_per_km" yaml:"haul_emissions_per_km"`
	CrusherEmissionsPerKg units.TonsCO2e `json:"crusher_emissions_per_kg" yaml:"crusher_emissions_per_kg"`
	GrinderEmissionsPerKg units.TonsCO2e `json:"grinder_emissions_per_kg" yaml:"grinder_emissions_per_kg"`
	CrusherRecoveryRate   units.Fraction `json:"crusher_recovery_rate" yaml:"crusher_recovery_rate"`
	GrinderRecoveryRate   units.Fraction `json:"grinder_recovery_rate" yaml:"grinder_recovery_rate"`
}

// Options select the processing mode and optionally override the haul
// profile. Nil pointers take the documented defaults.
type Options struct {
	Mode Mode `json:"mode" yaml:"mode"`

	// TruckSpeedKmh defaults to 50 km/h.
	TruckSpeedKmh *float64 `json:"truck_speed_kmh,omitempty" yaml:"truck_speed_kmh,omitempty"`

	// LoadUnloadHoursPerTrip defaults to 0.25 h per trip.
	LoadUnloadHoursPerTrip *float64 `json:"load_unload_hours_per_trip,omitempty" yaml:"load_unload_hours_per_trip,omitempty"`
}

// Default haul profile applied when Options leave the fields nil.
const (
	DefaultTruckSpeedKmh          = 50.0
	DefaultLoadUnloadHoursPerTrip = 0.25
)

// Result is the outcome of one simulated run. It is computed fresh per
// call and never mutated afterwards.
type Result struct {
	TotalCostUSD           units.USD       `json:"total_cost_usd"`
	TotalTimeHours         units.Hours     `json:"total_time_hours"`
	TotalEmissionsTonsCO2e units.TonsCO2e  `json:"total_emissions_tons_co2e"`
	TruckTrips             int             `json:"truck_trips"`
	MaterialRecoveredKg    units.Kilograms `json:"material_recovered_kg"`
}
