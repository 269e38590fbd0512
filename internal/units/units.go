// Package units converts raw game counters into display units.
package units

import (
	"math"
	"strconv"

	"github.com/pable/go-mc-stats/internal/model"
)

const (
	ticksPerSecond = 20
	secondsPerHour = 3600
	cmPerBlock     = 100
)

// Convert maps a raw counter to its display value. Unknown or empty kinds
// return v unchanged.
func Convert(v float64, kind model.UnitKind) float64 {
	switch kind {
	case model.UnitTicksToHours:
		return round2(v / ticksPerSecond / secondsPerHour)
	case model.UnitCMToBlocks:
		return math.Trunc(v / cmPerBlock)
	case model.UnitDeciToInt:
		return math.Trunc(v / 10)
	default:
		return v
	}
}

// TicksToHours is Convert(v, UnitTicksToHours).
func TicksToHours(ticks float64) float64 {
	return Convert(ticks, model.UnitTicksToHours)
}

// round2 rounds the stored binary value to two places, ties to even, so 0.495
// (held as 0.49499...) gives 0.49.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
