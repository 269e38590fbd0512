package model

// UnitKind selects how a raw counter is converted for display.
type UnitKind string

const (
	UnitNone         UnitKind = "none"
	UnitTicksToHours UnitKind = "ticks_to_hours" // 20 ticks per second
	UnitCMToBlocks   UnitKind = "cm_to_blocks"
	UnitDeciToInt    UnitKind = "deci_to_int" // tenths -> whole
)

// Known reports whether k is one of the supported unit kinds. The empty kind
// counts as UnitNone.
func (k UnitKind) Known() bool {
	switch k {
	case "", UnitNone, UnitTicksToHours, UnitCMToBlocks, UnitDeciToInt:
		return true
	default:
		return false
	}
}

// Mode selects between a direct key lookup and summing a whole category.
type Mode string

const (
	ModeStat Mode = "stat"
	ModeSum  Mode = "sum"
)

// ---- Configuration tables ----

// MetricDefinition describes how one displayed value is derived from a raw
// stats record. Either Key is set or Mode is ModeSum.
type MetricDefinition struct {
	ID       string   `koanf:"id" json:"id"`
	Label    string   `koanf:"label" json:"label"`
	Category string   `koanf:"category" json:"category"`
	Key      string   `koanf:"key" json:"key,omitempty"`
	Mode     Mode     `koanf:"type" json:"type,omitempty"`
	Unit     UnitKind `koanf:"unit" json:"unit,omitempty"`
	Color    string   `koanf:"color" json:"color,omitempty"`
}

// EffectiveMode returns the extraction mode, defaulting to ModeStat.
func (d MetricDefinition) EffectiveMode() Mode {
	if d.Mode == "" {
		return ModeStat
	}
	return d.Mode
}

// HasUnit reports whether the definition requests a conversion.
func (d MetricDefinition) HasUnit() bool {
	return d.Unit != "" && d.Unit != UnitNone
}

// ---- Records ----

// Stats maps category -> key -> counter value.
type Stats map[string]map[string]float64

// RawPlayerRecord is one parsed stats file. Stats is already normalized to
// the category level regardless of whether the file wrapped it.
type RawPlayerRecord struct {
	ID     string // normalized identifier derived from the file name
	Source string // path the record was read from
	Stats  Stats
}

// PlayerRecord is the normalized, display-ready view of one qualifying player.
// Metrics is keyed by leaderboard metric ID (including the playtime metric);
// Notables is keyed by notable label.
type PlayerRecord struct {
	Name     string             `json:"name"`
	ID       string             `json:"uuid"`
	Playtime float64            `json:"playtime"`
	Metrics  map[string]float64 `json:"metrics"`
	Notables map[string]float64 `json:"notables"`
}

// Metric returns the leaderboard value for id, 0 when absent.
func (p *PlayerRecord) Metric(id string) float64 {
	return p.Metrics[id]
}

// Notable returns the notable value for label, 0 when absent.
func (p *PlayerRecord) Notable(label string) float64 {
	return p.Notables[label]
}
