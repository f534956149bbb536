package kpi

import (
	"errors"
	"math"
	"testing"

	"github.com/aggcycle/regrind/pkg/assume"
	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/units"
)

func sampleResult() flow.Result {
	return flow.Result{
		TotalCostUSD:           1010,
		TotalTimeHours:         9,
		TotalEmissionsTonsCO2e: 0.55,
		TruckTrips:             5,
		MaterialRecoveredKg:    8200,
	}
}

func TestComputeCO2Avoided(t *testing.T) {
	got, err := ComputeCO2Avoided(sampleResult(), DefaultFactors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 8200 kg * 0.0009 tCO2e/kg - 0.55 tCO2e
	want := 8200*0.0009 - 0.55
	if math.Abs(float64(got)-want) > 1e-9 {
		t.Errorf("co2 avoided = %v, want %v", got, want)
	}
}

func TestComputeCO2AvoidedFloorsAtZero(t *testing.T) {
	res := sampleResult()
	res.MaterialRecoveredKg = 100
	res.TotalEmissionsTonsCO2e = 2.0

	got, err := ComputeCO2Avoided(res, DefaultFactors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("co2 avoided = %v, want exactly 0 when operations out-emit recovery", got)
	}
}

func TestComputeCarbonCapturePotential(t *testing.T) {
	got, err := ComputeCarbonCapturePotential(sampleResult(), DefaultFactors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(float64(got)-8200*0.00002) > 1e-9 {
		t.Errorf("capture potential = %v, want %v", got, 8200*0.00002)
	}
}

func TestComputeTruckMilesAvoided(t *testing.T) {
	got, err := ComputeTruckMilesAvoided(sampleResult(), DefaultFactors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(float64(got)-5*15.0) > 1e-9 {
		t.Errorf("truck miles avoided = %v, want 75", got)
	}
}

func TestComputeTruckMilesAvoidedNeverNegative(t *testing.T) {
	f := DefaultFactors()
	f.BaselineTruckMilesPerTrip = 5
	f.OptimizedTruckMilesPerTrip = 12

	got, err := ComputeTruckMilesAvoided(sampleResult(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("truck miles avoided = %v, want 0 when optimized route is longer", got)
	}
}

func TestNegativeFactorRejected(t *testing.T) {
	f := DefaultFactors()
	f.CO2AvoidedPerKgRecovered = -0.001

	if _, err := ComputeCO2Avoided(sampleResult(), f); !errors.Is(err, units.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestResolveRecordsTrace(t *testing.T) {
	var tr assume.Trace
	override := 0.002
	f := Resolve(Overrides{CO2AvoidedPerKgRecovered: &override}, &tr)

	if f.CO2AvoidedPerKgRecovered != 0.002 {
		t.Errorf("override not applied: %v", f.CO2AvoidedPerKgRecovered)
	}
	if f.BaselineTruckMilesPerTrip != DefaultBaselineTruckMilesPerTrip {
		t.Errorf("default not applied: %v", f.BaselineTruckMilesPerTrip)
	}
	if len(tr.Applied()) != 4 {
		t.Errorf("trace entries = %d, want 4", len(tr.Applied()))
	}
	if len(tr.Defaults()) != 3 {
		t.Errorf("defaulted entries = %d, want 3", len(tr.Defaults()))
	}
}
