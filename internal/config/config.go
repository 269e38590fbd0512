// Package config defines the report configuration: input/output locations,
// the activity threshold, and the leaderboard and notable metric tables.
//
// Defaults reproduce a vanilla Minecraft server deployment. Load layers a
// YAML file and MCSTATS_ environment variables on top of them.
package config

import (
	"fmt"

	"github.com/pable/go-mc-stats/internal/model"
)

// PlaytimeConfig selects the leaderboard metric used for the activity filter
// and the legacy keys tried, in order, when it reads zero.
type PlaytimeConfig struct {
	Metric       string   `koanf:"metric"`
	FallbackKeys []string `koanf:"fallback_keys"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// StatsDir holds one <uuid>.json file per player.
	StatsDir string `koanf:"stats_dir"`

	// UserCache is the server's usercache.json used for display names.
	UserCache string `koanf:"usercache"`

	// Output is where the HTML report is written.
	Output string `koanf:"output"`

	// MinPlaytimeHours drops players with less playtime. Inclusive.
	MinPlaytimeHours float64 `koanf:"min_playtime_hours"`

	Title string `koanf:"title"`

	// BannerHTML is optional markup shown under the title. Sanitized before use.
	BannerHTML string `koanf:"banner_html"`

	LeaderboardTop int `koanf:"leaderboard_top"`
	NotableTop     int `koanf:"notable_top"`

	Playtime PlaytimeConfig `koanf:"playtime"`

	Leaderboards []model.MetricDefinition `koanf:"leaderboards"`
	Notables     []model.MetricDefinition `koanf:"notables"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		StatsDir:         "world/stats",
		UserCache:        "usercache.json",
		Output:           "stats_dashboard.html",
		MinPlaytimeHours: 0.5,
		Title:            "Server Statistics",
		LeaderboardTop:   10,
		NotableTop:       5,
		Playtime: PlaytimeConfig{
			Metric:       "playtime",
			FallbackKeys: []string{"minecraft:play_one_minute"},
		},
		Leaderboards: DefaultLeaderboards(),
		Notables:     DefaultNotables(),
	}
}

const custom = "minecraft:custom"

// DefaultLeaderboards returns the charted metric table.
func DefaultLeaderboards() []model.MetricDefinition {
	return []model.MetricDefinition{
		{ID: "playtime", Label: "Total Playtime (Hours)", Category: custom, Key: "minecraft:play_time", Unit: model.UnitTicksToHours, Color: "#76c710"},
		{ID: "deaths", Label: "Total Deaths", Category: custom, Key: "minecraft:deaths", Color: "#c12c2c"},
		{ID: "mob_kills", Label: "Mob Kills", Category: custom, Key: "minecraft:mob_kills", Color: "#d9a334"},
		{ID: "player_kills", Label: "Player Kills", Category: custom, Key: "minecraft:player_kills", Color: "#b83d3d"},
		{ID: "blocks_mined", Label: "Total Blocks Mined", Category: "minecraft:mined", Mode: model.ModeSum, Color: "#7a7a7a"},
		{ID: "items_crafted", Label: "Items Crafted", Category: "minecraft:crafted", Mode: model.ModeSum, Color: "#6d4e28"},
		{ID: "items_used", Label: "Items Used / Placed", Category: "minecraft:used", Mode: model.ModeSum, Color: "#a88e63"},
		{ID: "damage_dealt", Label: "Damage Dealt", Category: custom, Key: "minecraft:damage_dealt", Unit: model.UnitDeciToInt, Color: "#d66c15"},
		{ID: "distance_walked", Label: "Distance Walked", Category: custom, Key: "minecraft:walk_one_cm", Unit: model.UnitCMToBlocks, Color: "#5297d6"},
		{ID: "damage_taken", Label: "Damage Taken", Category: custom, Key: "minecraft:damage_taken", Color: "#9e2b2b"},
	}
}

// DefaultNotables returns the listed "hall of fame" table.
func DefaultNotables() []model.MetricDefinition {
	cm := func(label, key string) model.MetricDefinition {
		return model.MetricDefinition{Label: label, Category: custom, Key: key, Unit: model.UnitCMToBlocks}
	}
	stat := func(label, key string) model.MetricDefinition {
		return model.MetricDefinition{Label: label, Category: custom, Key: key}
	}
	sum := func(label, category string) model.MetricDefinition {
		return model.MetricDefinition{Label: label, Category: category, Mode: model.ModeSum}
	}
	return []model.MetricDefinition{
		cm("Distance Swum", "minecraft:swim_one_cm"),
		cm("Distance Flown", "minecraft:fly_one_cm"),
		cm("Distance Crouched", "minecraft:crouch_one_cm"),
		cm("Distance on Water", "minecraft:boat_one_cm"),
		cm("Distance by Elytra", "minecraft:aviate_one_cm"),
		stat("Jumps Made", "minecraft:jump"),
		stat("Chests Opened", "minecraft:open_chest"),
		stat("Workstations Used", "minecraft:interact_with_crafting_table"),
		stat("Beds Used", "minecraft:sleep_in_bed"),
		stat("Villager Trades", "minecraft:traded_with_villager"),
		stat("Damage Resisted", "minecraft:damage_resisted"),
		stat("Damage Absorbed", "minecraft:damage_absorbed"),
		cm("Fall Distance", "minecraft:fall_one_cm"),
		sum("Items Picked Up", "minecraft:picked_up"),
		sum("Items Dropped", "minecraft:dropped"),
		stat("Fish Caught", "minecraft:fish_caught"),
		stat("Animals Bred", "minecraft:animals_bred"),
		stat("Enchantments", "minecraft:enchant_item"),
		stat("Raids Won", "minecraft:raid_win"),
		stat("Bells Rung", "minecraft:bell_ring"),
	}
}

// PlaytimeDefinition returns the leaderboard entry named by Playtime.Metric.
func (c *Config) PlaytimeDefinition() (model.MetricDefinition, bool) {
	for _, d := range c.Leaderboards {
		if d.ID == c.Playtime.Metric {
			return d, true
		}
	}
	return model.MetricDefinition{}, false
}

// FindLeaderboard looks a leaderboard up by ID or, failing that, by label.
func (c *Config) FindLeaderboard(name string) (model.MetricDefinition, bool) {
	for _, d := range c.Leaderboards {
		if d.ID == name {
			return d, true
		}
	}
	for _, d := range c.Leaderboards {
		if d.Label == name {
			return d, true
		}
	}
	return model.MetricDefinition{}, false
}

// FindNotable looks a notable up by label.
func (c *Config) FindNotable(label string) (model.MetricDefinition, bool) {
	for _, d := range c.Notables {
		if d.Label == label {
			return d, true
		}
	}
	return model.MetricDefinition{}, false
}

// Validate checks the invariants the pipeline relies on.
func (c *Config) Validate() error {
	if c.StatsDir == "" {
		return fmt.Errorf("%w: stats_dir must not be empty", ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output must not be empty", ErrInvalidConfig)
	}
	if c.MinPlaytimeHours < 0 {
		return fmt.Errorf("%w: min_playtime_hours must not be negative", ErrInvalidConfig)
	}
	if c.LeaderboardTop <= 0 || c.NotableTop <= 0 {
		return fmt.Errorf("%w: leaderboard_top and notable_top must be positive", ErrInvalidConfig)
	}

	ids := make(map[string]struct{}, len(c.Leaderboards))
	for i, d := range c.Leaderboards {
		if d.ID == "" {
			return fmt.Errorf("%w: leaderboards[%d]: id must not be empty", ErrInvalidConfig, i)
		}
		if _, dup := ids[d.ID]; dup {
			return fmt.Errorf("%w: leaderboards[%d]: duplicate id %q", ErrInvalidConfig, i, d.ID)
		}
		ids[d.ID] = struct{}{}
		if err := validateDefinition(d); err != nil {
			return fmt.Errorf("%w: leaderboards[%d] %q: %v", ErrInvalidConfig, i, d.ID, err)
		}
	}

	labels := make(map[string]struct{}, len(c.Notables))
	for i, d := range c.Notables {
		if d.Label == "" {
			return fmt.Errorf("%w: notables[%d]: label must not be empty", ErrInvalidConfig, i)
		}
		if _, dup := labels[d.Label]; dup {
			return fmt.Errorf("%w: notables[%d]: duplicate label %q", ErrInvalidConfig, i, d.Label)
		}
		labels[d.Label] = struct{}{}
		if err := validateDefinition(d); err != nil {
			return fmt.Errorf("%w: notables[%d] %q: %v", ErrInvalidConfig, i, d.Label, err)
		}
	}

	pt, ok := c.PlaytimeDefinition()
	if !ok {
		return fmt.Errorf("%w: playtime.metric %q is not a leaderboard id", ErrInvalidConfig, c.Playtime.Metric)
	}
	if pt.EffectiveMode() != model.ModeStat {
		return fmt.Errorf("%w: playtime metric %q must be a direct key lookup", ErrInvalidConfig, pt.ID)
	}
	return nil
}

func validateDefinition(d model.MetricDefinition) error {
	if d.Category == "" {
		return fmt.Errorf("category must not be empty")
	}
	switch d.EffectiveMode() {
	case model.ModeStat:
		if d.Key == "" {
			return fmt.Errorf("needs a key or type: sum")
		}
	case model.ModeSum:
	default:
		return fmt.Errorf("unknown type %q", d.Mode)
	}
	if !d.Unit.Known() {
		return fmt.Errorf("unknown unit %q", d.Unit)
	}
	return nil
}
