package sweep

import (
	"errors"
	"math"
	"testing"

	"github.com/aggcycle/regrind/pkg/units"
)

func TestExpandSimpleRange(t *testing.T) {
	got := NumericRange{Start: 10, End: 50, Step: 10}.Expand()
	want := []float64{10, 20, 30, 40, 50}
	if len(got) != len(want) {
		t.Fatalf("expanded to %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandAppendsEndWhenStepOvershoots(t *testing.T) {
	got := NumericRange{Start: 0, End: 1, Step: 0.3}.Expand()
	want := []float64{0, 0.3, 0.6, 0.9, 1}
	if len(got) != len(want) {
		t.Fatalf("expanded to %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("value[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandAbsorbsFloatDrift(t *testing.T) {
	// 0.1 steps accumulate binary error; the end value must appear once.
	got := NumericRange{Start: 0, End: 0.5, Step: 0.1}.Expand()
	if len(got) != 6 {
		t.Fatalf("expanded to %v, want 6 values 0..0.5", got)
	}
	if got[len(got)-1] != 0.5 {
		t.Errorf("last value = %v, want 0.5", got[len(got)-1])
	}
}

func TestExpandDegenerateRange(t *testing.T) {
	got := NumericRange{Start: 2, End: 2, Step: 1}.Expand()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expanded to %v, want [2]", got)
	}
}

func TestStepCountMatchesWalk(t *testing.T) {
	cases := []struct {
		name string
		r    NumericRange
		want int
	}{
		{"exact steps", NumericRange{Start: 10, End: 50, Step: 10}, 5},
		{"overshooting step", NumericRange{Start: 0, End: 1, Step: 0.3}, 4}, // end appended separately
		{"degenerate", NumericRange{Start: 2, End: 2, Step: 1}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.stepCount(); got != tc.want {
				t.Errorf("step count = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestStepCountFlagsDegenerateRange(t *testing.T) {
	huge := NumericRange{Start: 1, End: 1_000_000, Step: 0.1}
	if n := huge.stepCount(); n <= MaxGridPoints {
		t.Errorf("step count = %d, want more than %d", n, MaxGridPoints)
	}
	extreme := NumericRange{Start: 0, End: 1, Step: 1e-300}
	if n := extreme.stepCount(); n <= MaxGridPoints {
		t.Errorf("step count = %d, want more than %d", n, MaxGridPoints)
	}
}

func TestValidateRange(t *testing.T) {
	cases := []struct {
		name string
		r    NumericRange
		kind RangeKind
		ok   bool
	}{
		{"valid positive", NumericRange{1, 10, 1}, RangePositive, true},
		{"zero step", NumericRange{1, 10, 0}, RangePositive, false},
		{"end before start", NumericRange{10, 1, 1}, RangePositive, false},
		{"zero start positive kind", NumericRange{0, 10, 1}, RangePositive, false},
		{"valid unit interval", NumericRange{0, 1, 0.25}, RangeUnitInterval, true},
		{"unit interval above one", NumericRange{0, 1.5, 0.25}, RangeUnitInterval, false},
		{"unit interval below zero", NumericRange{-0.1, 1, 0.25}, RangeUnitInterval, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate("r", tc.kind)
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, units.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
