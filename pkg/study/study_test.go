package study

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/sweep"
)

const sampleYAML = `
name: pilot-yard
unit_of_work:
  inbound_material_kg: 10000
  haul_distance_per_trip_km: 30
cost_drivers:
  truck_capacity_kg: 2000
  haul_cost_per_km: 3
  labor_cost_per_hour: 40
  crusher_cost_per_kg: 0.02
  grinder_cost_per_kg: 0.05
  crusher_throughput_kg_per_hour: 2500
  grinder_throughput_kg_per_hour: 1800
sustainability_drivers:
  haul_emissions_per_km: 0.001
  crusher_emissions_per_kg: 0.00004
  grinder_emissions_per_kg: 0.00006
  crusher_recovery_rate: 0.82
  grinder_recovery_rate: 0.93
simulation:
  mode: crusher
  truck_speed_kmh: 60
  load_unload_hours_per_trip: 0.5
sweep:
  axes:
    haul_distance_km: {start: 20, end: 40, step: 10}
    reuse_uptake_rate: {start: 0, end: 1, step: 0.25}
    grinder:
      utilization: {start: 0.5, end: 1, step: 0.25}
  assumptions:
    landfill_disposal_cost_per_kg: 0.08
investment:
  discount_rate: 0.1
  baseline:
    mode: crusher
    initial_investment_usd: 0
    periods:
      - {period: 1, revenue_usd: 1200}
      - {period: 2, revenue_usd: 1200}
  alternative:
    mode: grinder
    initial_investment_usd: 240000
    periods:
      - {period: 1, revenue_usd: 1700}
      - {period: 2, revenue_usd: 1700}
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "study.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("writing sample: %v", err)
	}
	return dir
}

func TestLoadProject(t *testing.T) {
	dir := writeSample(t)

	s, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Name != "pilot-yard" {
		t.Errorf("name = %q, want pilot-yard", s.Name)
	}
	if s.UnitOfWork.InboundMaterialKg != 10000 {
		t.Errorf("inbound = %v, want 10000", s.UnitOfWork.InboundMaterialKg)
	}
	if s.Simulation.Mode != flow.ModeCrusher {
		t.Errorf("mode = %q, want crusher", s.Simulation.Mode)
	}
	if s.Simulation.TruckSpeedKmh == nil || *s.Simulation.TruckSpeedKmh != 60 {
		t.Errorf("truck speed = %v, want 60", s.Simulation.TruckSpeedKmh)
	}
	if s.Sweep == nil || s.Sweep.Axes.Grinder.Kind() != sweep.GrinderAxisUtilization {
		t.Fatal("sweep section not parsed")
	}
	if s.Sweep.Assumptions.LandfillDisposalCostPerKg == nil || *s.Sweep.Assumptions.LandfillDisposalCostPerKg != 0.08 {
		t.Error("landfill assumption override not parsed")
	}
	if s.Investment == nil || len(s.Investment.Alternative.Periods) != 2 {
		t.Fatal("investment section not parsed")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "study.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateSchemaValidStudy(t *testing.T) {
	dir := writeSample(t)
	s, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := ValidateSchema(s)
	if !report.Valid {
		t.Errorf("valid study rejected: %+v", report.Errors)
	}
}

func TestValidateSchemaCollectsAllErrors(t *testing.T) {
	dir := writeSample(t)
	s, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.UnitOfWork.InboundMaterialKg = 0
	s.CostDrivers.TruckCapacityKg = -5
	s.SustainabilityDrivers.CrusherRecoveryRate = 1.5

	report := ValidateSchema(s)
	if report.Valid {
		t.Fatal("invalid study accepted")
	}
	if len(report.Errors) != 3 {
		t.Errorf("errors = %d, want 3 (all findings reported at once)", len(report.Errors))
	}
}

func TestValidateSchemaGrinderAxisConflict(t *testing.T) {
	dir := writeSample(t)
	s, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Sweep.Axes.Grinder.Throughput = &sweep.NumericRange{Start: 100, End: 200, Step: 50}

	report := ValidateSchema(s)
	if report.Valid {
		t.Error("study with both grinder axes accepted")
	}
}

func TestValidateSchemaPenaltyInfoNote(t *testing.T) {
	dir := writeSample(t)
	s, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Sweep.ExpeditePenalty.Enabled = true

	report := ValidateSchema(s)
	if !report.Valid {
		t.Fatalf("valid study rejected: %+v", report.Errors)
	}
	if len(report.Info) != 1 {
		t.Errorf("info notes = %d, want 1 for enabled penalty proxy", len(report.Info))
	}
}

func TestValidateSchemaBadInvestmentPeriod(t *testing.T) {
	dir := writeSample(t)
	s, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Investment.Baseline.Periods[0].Period = 0

	report := ValidateSchema(s)
	if report.Valid {
		t.Error("study with non-positive period accepted")
	}
}
