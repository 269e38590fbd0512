// Package extractor reads single values out of a normalized stats record.
package extractor

import (
	"github.com/pable/go-mc-stats/internal/model"
	"github.com/pable/go-mc-stats/internal/units"
)

// Extract returns stats[category][key] in ModeStat, or the sum of every value
// in stats[category] in ModeSum. Absent categories and keys read as 0.
func Extract(stats model.Stats, category, key string, mode model.Mode) float64 {
	counters := stats[category]
	if mode == model.ModeSum {
		var total float64
		for _, v := range counters {
			total += v
		}
		return total
	}
	return counters[key]
}

// Value extracts the raw value for def and applies its unit conversion.
func Value(stats model.Stats, def model.MetricDefinition) float64 {
	v := Extract(stats, def.Category, def.Key, def.EffectiveMode())
	if def.HasUnit() {
		v = units.Convert(v, def.Unit)
	}
	return v
}
