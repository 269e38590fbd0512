package units

import (
	"math"
	"testing"

	"github.com/pable/go-mc-stats/internal/model"
)

func TestConvert(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		kind model.UnitKind
		want float64
	}{
		{"zero ticks", 0, model.UnitTicksToHours, 0},
		{"one hour of ticks", 72000, model.UnitTicksToHours, 1},
		{"half hour boundary", 36000, model.UnitTicksToHours, 0.5},
		{"ticks rounded to two places", 1200, model.UnitTicksToHours, 0.02},
		{"ticks rounded down", 3500, model.UnitTicksToHours, 0.05},
		{"stored value just below the half", 35640, model.UnitTicksToHours, 0.49},
		{"exact tie rounds to even", 9000, model.UnitTicksToHours, 0.12},
		{"cm to blocks", 250, model.UnitCMToBlocks, 2},
		{"cm below one block", 99, model.UnitCMToBlocks, 0},
		{"negative cm truncates toward zero", -250, model.UnitCMToBlocks, -2},
		{"tenths to whole", 1239, model.UnitDeciToInt, 123},
		{"none passes through", 12.5, model.UnitNone, 12.5},
		{"empty kind passes through", 7, "", 7},
		{"unknown kind passes through", 7, "furlongs", 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Convert(tc.v, tc.kind)
			if got != tc.want {
				t.Errorf("Convert(%v, %q) = %v, want %v", tc.v, tc.kind, got, tc.want)
			}
		})
	}
}

// TestTicksToHoursWithinHalfHundredth checks the 72000-ticks-per-hour identity
// over a spread of values.
func TestTicksToHoursWithinHalfHundredth(t *testing.T) {
	for v := 0.0; v < 5_000_000; v += 12_347 {
		exact := v / 72000
		if got := TicksToHours(v); math.Abs(got-exact) > 0.005+1e-9 {
			t.Fatalf("TicksToHours(%v) = %v, want within 0.005 of %v", v, got, exact)
		}
	}
}

func TestCMToBlocksIsFloorForNonNegative(t *testing.T) {
	for v := 0.0; v < 100_000; v += 37 {
		if got, want := Convert(v, model.UnitCMToBlocks), math.Floor(v/100); got != want {
			t.Fatalf("Convert(%v, cm_to_blocks) = %v, want %v", v, got, want)
		}
	}
}
