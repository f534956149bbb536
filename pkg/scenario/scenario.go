// Package scenario composes one operating scenario: a simulation run, the
// environmental KPIs derived from it, and the revenue the recovered
// material would earn, with a trace of every assumption applied.
package scenario

import (
	"github.com/aggcycle/regrind/pkg/assume"
	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/kpi"
	"github.com/aggcycle/regrind/pkg/units"
)

// DefaultRevenuePerKgRecovered is the documented default sale price of
// recovered material.
const DefaultRevenuePerKgRecovered = 0.04

// Config carries the scenario-level assumptions. Nil fields take defaults.
type Config struct {
	RevenuePerKgRecovered *float64      `json:"revenue_per_kg_recovered,omitempty" yaml:"revenue_per_kg_recovered,omitempty"`
	KpiFactors            kpi.Overrides `json:"kpi_factors,omitempty" yaml:"kpi_factors,omitempty"`
}

// Result is one analyzed scenario.
type Result struct {
	Simulation                     flow.Result      `json:"simulation"`
	CO2AvoidedTonsCO2e             units.TonsCO2e   `json:"co2_avoided_tons_co2e"`
	CarbonCapturePotentialTonsCO2e units.TonsCO2e   `json:"carbon_capture_potential_tons_co2e"`
	TruckMilesAvoided              units.Miles      `json:"truck_miles_avoided"`
	GrossRevenueUSD                units.USD        `json:"gross_revenue_usd"`
	NetRevenueUSD                  units.USD        `json:"net_revenue_usd"`
	AssumptionsUsed                []assume.Applied `json:"assumptions_used"`
}

// Analyze runs the simulation and derives the scenario-level metrics.
func Analyze(uow flow.UnitOfWork, costs flow.CostDrivers, sust flow.SustainabilityDrivers, opts flow.Options, cfg Config) (*Result, error) {
	sim, err := flow.Simulate(uow, costs, sust, opts)
	if err != nil {
		return nil, err
	}

	var trace assume.Trace
	revenuePerKg := trace.Float("revenue_per_kg_recovered", cfg.RevenuePerKgRecovered, DefaultRevenuePerKgRecovered)
	if err := units.NonNegative("revenue_per_kg_recovered", revenuePerKg); err != nil {
		return nil, err
	}
	factors := kpi.Resolve(cfg.KpiFactors, &trace)

	co2Avoided, err := kpi.ComputeCO2Avoided(sim, factors)
	if err != nil {
		return nil, err
	}
	capturePotential, err := kpi.ComputeCarbonCapturePotential(sim, factors)
	if err != nil {
		return nil, err
	}
	milesAvoided, err := kpi.ComputeTruckMilesAvoided(sim, factors)
	if err != nil {
		return nil, err
	}

	gross := float64(sim.MaterialRecoveredKg) * revenuePerKg

	return &Result{
		Simulation:                     sim,
		CO2AvoidedTonsCO2e:             co2Avoided,
		CarbonCapturePotentialTonsCO2e: capturePotential,
		TruckMilesAvoided:              milesAvoided,
		GrossRevenueUSD:                units.USD(gross),
		NetRevenueUSD:                  units.USD(gross - float64(sim.TotalCostUSD)),
		AssumptionsUsed:                trace.Applied(),
	}, nil
}
