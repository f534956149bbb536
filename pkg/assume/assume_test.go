package assume

import "testing"

func TestFloatOverrideAndDefault(t *testing.T) {
	var tr Trace
	override := 0.9

	if got := tr.Float("reuse_rate", &override, 0.5); got != 0.9 {
		t.Errorf("override resolution = %v, want 0.9", got)
	}
	if got := tr.Float("virgin_cost_per_kg", nil, 0.012); got != 0.012 {
		t.Errorf("default resolution = %v, want 0.012", got)
	}

	applied := tr.Applied()
	if len(applied) != 2 {
		t.Fatalf("applied entries = %d, want 2", len(applied))
	}
	if applied[0].Source != SourceOverride || applied[1].Source != SourceDefault {
		t.Errorf("sources = %v, %v; want override, default", applied[0].Source, applied[1].Source)
	}

	defaults := tr.Defaults()
	if len(defaults) != 1 || defaults[0] != "virgin_cost_per_kg" {
		t.Errorf("defaults = %v, want [virgin_cost_per_kg]", defaults)
	}
}

func TestSourceWireValues(t *testing.T) {
	// These strings appear verbatim in JSON responses; changing them breaks
	// consumers that filter the assumption trace by source.
	if SourceDefault != "default" {
		t.Errorf("SourceDefault = %q, want %q", SourceDefault, "default")
	}
	if SourceOverride != "override" {
		t.Errorf("SourceOverride = %q, want %q", SourceOverride, "override")
	}
}

func TestTraceOrderIsResolutionOrder(t *testing.T) {
	var tr Trace
	override := 3.0
	tr.Float("a", nil, 1)
	tr.Float("b", nil, 2)
	tr.Float("c", &override, 0)

	names := []string{}
	for _, a := range tr.Applied() {
		names = append(names, a.Name)
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}
