package scenario

import (
	"errors"
	"math"
	"testing"

	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/units"
)

func floatPtr(v float64) *float64 { return &v }

func sampleInputs() (flow.UnitOfWork, flow.CostDrivers, flow.SustainabilityDrivers, flow.Options) {
	uow := flow.UnitOfWork{InboundMaterialKg: 10000, HaulDistancePerTripKm: 30}
	costs := flow.CostDrivers{
		TruckCapacityKg:            2000,
		HaulCostPerKm:              3,
		LaborCostPerHour:           40,
		CrusherCostPerKg:           0.02,
		GrinderCostPerKg:           0.05,
		CrusherThroughputKgPerHour: 2500,
		GrinderThroughputKgPerHour: 1800,
	}
	sust := flow.SustainabilityDrivers{
		HaulEmissionsPerKm:    0.001,
		CrusherEmissionsPerKg: 0.00004,
		GrinderEmissionsPerKg: 0.00006,
		CrusherRecoveryRate:   0.82,
		GrinderRecoveryRate:   0.93,
	}
	opts := flow.Options{
		Mode:                   flow.ModeCrusher,
		TruckSpeedKmh:          floatPtr(60),
		LoadUnloadHoursPerTrip: floatPtr(0.5),
	}
	return uow, costs, sust, opts
}

func TestAnalyzeComposesSimulationAndKPIs(t *testing.T) {
	uow, costs, sust, opts := sampleInputs()

	res, err := Analyze(uow, costs, sust, opts, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Simulation.TruckTrips != 5 {
		t.Errorf("truck trips = %d, want 5", res.Simulation.TruckTrips)
	}
	// 8200 kg at the default 0.04 USD/kg.
	if math.Abs(float64(res.GrossRevenueUSD)-328) > 1e-9 {
		t.Errorf("gross revenue = %v, want 328", res.GrossRevenueUSD)
	}
	if math.Abs(float64(res.NetRevenueUSD)-(328-1010)) > 1e-9 {
		t.Errorf("net revenue = %v, want %v", res.NetRevenueUSD, 328-1010)
	}
	if res.CO2AvoidedTonsCO2e <= 0 {
		t.Errorf("co2 avoided = %v, want > 0 for this scenario", res.CO2AvoidedTonsCO2e)
	}
	// revenue + 4 KPI factors
	if len(res.AssumptionsUsed) != 5 {
		t.Errorf("assumptions used = %d, want 5", len(res.AssumptionsUsed))
	}
}

func TestAnalyzeRevenueOverride(t *testing.T) {
	uow, costs, sust, opts := sampleInputs()

	res, err := Analyze(uow, costs, sust, opts, Config{RevenuePerKgRecovered: floatPtr(0.1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(float64(res.GrossRevenueUSD)-820) > 1e-9 {
		t.Errorf("gross revenue = %v, want 820", res.GrossRevenueUSD)
	}
	if res.AssumptionsUsed[0].Source != "override" {
		t.Errorf("revenue assumption source = %v, want override", res.AssumptionsUsed[0].Source)
	}
}

func TestAnalyzeRejectsNegativeRevenue(t *testing.T) {
	uow, costs, sust, opts := sampleInputs()
	if _, err := Analyze(uow, costs, sust, opts, Config{RevenuePerKgRecovered: floatPtr(-1)}); !errors.Is(err, units.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestAnalyzePropagatesSimulationErrors(t *testing.T) {
	uow, costs, sust, opts := sampleInputs()
	uow.InboundMaterialKg = -5
	if _, err := Analyze(uow, costs, sust, opts, Config{}); !errors.Is(err, units.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
