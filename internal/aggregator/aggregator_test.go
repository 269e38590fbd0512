package aggregator

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pable/go-mc-stats/internal/config"
	"github.com/pable/go-mc-stats/internal/identity"
	"github.com/pable/go-mc-stats/internal/model"
)

// IDs for test players.
const (
	playerA = "aaaaaaaa11112222333344445555aaaa"
	playerB = "bbbbbbbb11112222333344445555bbbb"
	playerC = "cccccccc11112222333344445555cccc"
)

const custom = "minecraft:custom"

// makeRecord builds a raw record with the given minecraft:custom counters.
func makeRecord(id string, customStats map[string]float64) model.RawPlayerRecord {
	return model.RawPlayerRecord{
		ID:    id,
		Stats: model.Stats{custom: customStats},
	}
}

// testConfig returns the default tables with the given threshold.
func testConfig(minHours float64) *config.Config {
	cfg := config.New()
	cfg.MinPlaytimeHours = minHours
	return cfg
}

// ---- Threshold tests ----

// TestAggregate_EndToEnd: A at exactly 0.5h passes, B at 0.05h is dropped.
func TestAggregate_EndToEnd(t *testing.T) {
	records := []model.RawPlayerRecord{
		makeRecord(playerA, map[string]float64{"minecraft:play_time": 36000, "minecraft:deaths": 3}),
		makeRecord(playerB, map[string]float64{"minecraft:play_time": 3600}),
	}

	got := Aggregate(records, testConfig(0.5), identity.NewTable(map[string]string{playerA: "Alex"}))
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 player, got %d", len(got))
	}
	p := got[0]
	if p.ID != playerA || p.Name != "Alex" {
		t.Errorf("unexpected player %q (%q)", p.ID, p.Name)
	}
	if p.Playtime != 0.5 {
		t.Errorf("playtime: want 0.5, got %v", p.Playtime)
	}
	if p.Metric("deaths") != 3 {
		t.Errorf("deaths: want 3, got %v", p.Metric("deaths"))
	}
	if p.Metric("playtime") != 0.5 {
		t.Errorf("playtime metric: want 0.5, got %v", p.Metric("playtime"))
	}
}

// TestAggregate_ThresholdIsInclusive: 0.49h is excluded, 0.50h is included.
func TestAggregate_ThresholdIsInclusive(t *testing.T) {
	records := []model.RawPlayerRecord{
		makeRecord(playerA, map[string]float64{"minecraft:play_time": 0.49 * 72000}),
		makeRecord(playerB, map[string]float64{"minecraft:play_time": 0.50 * 72000}),
	}
	got := Aggregate(records, testConfig(0.5), nil)
	if len(got) != 1 || got[0].ID != playerB {
		t.Fatalf("expected only playerB, got %+v", got)
	}
}

// TestAggregate_ZeroThresholdKeepsIdlePlayers: with no threshold, a player with
// no stats at all is still emitted, every metric defaulted to zero.
func TestAggregate_ZeroThresholdKeepsIdlePlayers(t *testing.T) {
	records := []model.RawPlayerRecord{{ID: playerC, Stats: model.Stats{}}}
	cfg := testConfig(0)

	got := Aggregate(records, cfg, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 player, got %d", len(got))
	}
	p := got[0]
	if p.Name != "cccccccc" {
		t.Errorf("fallback name: want cccccccc, got %q", p.Name)
	}
	if len(p.Metrics) != len(cfg.Leaderboards) {
		t.Errorf("expected %d metrics, got %d", len(cfg.Leaderboards), len(p.Metrics))
	}
	for id, v := range p.Metrics {
		if v != 0 {
			t.Errorf("metric %s: want 0, got %v", id, v)
		}
	}
	if len(p.Notables) != len(cfg.Notables) {
		t.Errorf("expected %d notables, got %d", len(cfg.Notables), len(p.Notables))
	}
}

// ---- Playtime fallback tests ----

// TestPlaytime_LegacyKeyFallback: play_time absent, play_one_minute = 1200 ticks.
func TestPlaytime_LegacyKeyFallback(t *testing.T) {
	cfg := testConfig(0)
	def, _ := cfg.PlaytimeDefinition()

	stats := model.Stats{custom: {"minecraft:play_one_minute": 1200}}
	if got := Playtime(stats, def, cfg.Playtime.FallbackKeys); got != 0.02 {
		t.Errorf("legacy fallback: want 0.02, got %v", got)
	}

	stats = model.Stats{custom: {"minecraft:play_time": 0, "minecraft:play_one_minute": 1200}}
	if got := Playtime(stats, def, cfg.Playtime.FallbackKeys); got != 0.02 {
		t.Errorf("zero primary: want 0.02, got %v", got)
	}
}

// TestPlaytime_PrimaryWins: the legacy key is ignored when the primary is set.
func TestPlaytime_PrimaryWins(t *testing.T) {
	cfg := testConfig(0)
	def, _ := cfg.PlaytimeDefinition()

	stats := model.Stats{custom: {"minecraft:play_time": 72000, "minecraft:play_one_minute": 1200}}
	if got := Playtime(stats, def, cfg.Playtime.FallbackKeys); got != 1 {
		t.Errorf("want 1h, got %v", got)
	}
}

// ---- Metric extraction tests ----

func TestAggregate_UnitsAndSums(t *testing.T) {
	rec := model.RawPlayerRecord{
		ID: playerA,
		Stats: model.Stats{
			custom: {
				"minecraft:play_time":    72000,
				"minecraft:walk_one_cm":  25_075,
				"minecraft:damage_dealt": 1239,
				"minecraft:swim_one_cm":  999,
				"minecraft:jump":         42,
				"minecraft:damage_taken": -5,
				"minecraft:player_kills": 1,
				"minecraft:mob_kills":    17,
			},
			"minecraft:mined":     {"minecraft:stone": 100, "minecraft:dirt": 20},
			"minecraft:picked_up": {"minecraft:cobblestone": 64, "minecraft:torch": 3},
		},
	}

	got := Aggregate([]model.RawPlayerRecord{rec}, testConfig(0), nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 player, got %d", len(got))
	}
	p := got[0]

	wantMetrics := map[string]float64{
		"distance_walked": 250,
		"damage_dealt":    123,
		"blocks_mined":    120,
		"mob_kills":       17,
		"player_kills":    1,
		"damage_taken":    -5, // negatives pass through
		"items_crafted":   0,
	}
	for id, want := range wantMetrics {
		if got := p.Metric(id); got != want {
			t.Errorf("metric %s: want %v, got %v", id, want, got)
		}
	}

	wantNotables := map[string]float64{
		"Distance Swum":   9,
		"Jumps Made":      42,
		"Items Picked Up": 67,
		"Bells Rung":      0,
	}
	for label, want := range wantNotables {
		if got := p.Notable(label); got != want {
			t.Errorf("notable %s: want %v, got %v", label, want, got)
		}
	}
}

// TestAggregate_PreservesInputOrder: output follows discovery order, not rank.
func TestAggregate_PreservesInputOrder(t *testing.T) {
	records := []model.RawPlayerRecord{
		makeRecord(playerC, map[string]float64{"minecraft:play_time": 72000}),
		makeRecord(playerA, map[string]float64{"minecraft:play_time": 720000}),
		makeRecord(playerB, map[string]float64{"minecraft:play_time": 360000}),
	}
	got := Aggregate(records, testConfig(0.5), nil)
	if len(got) != 3 {
		t.Fatalf("expected 3 players, got %d", len(got))
	}
	for i, want := range []string{playerC, playerA, playerB} {
		if got[i].ID != want {
			t.Errorf("position %d: want %s, got %s", i, want, got[i].ID)
		}
	}
}

// ---- Build tests ----

func writeStats(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// TestBuild_SkipsMalformedRecords: a broken file is logged and skipped while
// the remaining files are still processed.
func TestBuild_SkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	writeStats(t, dir, "aaaaaaaa-1111-2222-3333-44445555aaaa.json",
		`{"stats":{"minecraft:custom":{"minecraft:play_time":36000,"minecraft:deaths":3}},"DataVersion":3955}`)
	writeStats(t, dir, "bbbbbbbb-1111-2222-3333-44445555bbbb.json", `{"stats": {"minecraft:custom": `)
	writeStats(t, dir, "cccccccc-1111-2222-3333-44445555cccc.json",
		`{"minecraft:custom":{"minecraft:play_one_minute":1200}}`)

	cfg := testConfig(0.5)
	cfg.StatsDir = dir

	core, logs := observer.New(zapcore.WarnLevel)
	res, err := Build(cfg, identity.NewTable(nil), zap.New(core))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Scanned != 3 || res.Skipped != 1 || res.Filtered != 1 {
		t.Errorf("counts: scanned=%d skipped=%d filtered=%d", res.Scanned, res.Skipped, res.Filtered)
	}
	if len(res.Players) != 1 || res.Players[0].ID != playerA {
		t.Fatalf("expected only playerA, got %+v", res.Players)
	}
	if res.Players[0].Metric("deaths") != 3 {
		t.Errorf("deaths: want 3, got %v", res.Players[0].Metric("deaths"))
	}
	if logs.FilterMessage("skipping stats file").Len() != 1 {
		t.Errorf("expected one skip warning, got %d", logs.Len())
	}
}

// TestBuild_OverflowingCounterIsIsolated: a counter beyond float64 range
// skips only that player's file.
func TestBuild_OverflowingCounterIsIsolated(t *testing.T) {
	dir := t.TempDir()
	writeStats(t, dir, "aaaaaaaa-1111-2222-3333-44445555aaaa.json",
		`{"stats":{"minecraft:custom":{"minecraft:play_time":36000,"minecraft:deaths":3}}}`)
	writeStats(t, dir, "bbbbbbbb-1111-2222-3333-44445555bbbb.json",
		`{"stats":{"minecraft:custom":{"minecraft:play_time":72000,"minecraft:deaths":1e400}}}`)

	cfg := testConfig(0.5)
	cfg.StatsDir = dir

	core, logs := observer.New(zapcore.WarnLevel)
	res, err := Build(cfg, identity.NewTable(nil), zap.New(core))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Skipped != 1 || len(res.Players) != 1 || res.Players[0].ID != playerA {
		t.Fatalf("expected only playerA with one skip, got skipped=%d players=%+v", res.Skipped, res.Players)
	}
	for _, p := range res.Players {
		for id, v := range p.Metrics {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				t.Errorf("metric %s is %v", id, v)
			}
		}
	}
	if logs.FilterMessage("skipping stats file").Len() != 1 {
		t.Errorf("expected one skip warning, got %d", logs.Len())
	}
}

// TestAggregate_PlaytimeRoundsStoredValue: 35640 ticks is 0.495h, stored
// just below the half, so it rounds to 0.49 and misses a 0.5h threshold.
func TestAggregate_PlaytimeRoundsStoredValue(t *testing.T) {
	records := []model.RawPlayerRecord{
		makeRecord(playerA, map[string]float64{"minecraft:play_time": 35640}),
	}
	if got := Aggregate(records, testConfig(0.5), nil); len(got) != 0 {
		t.Fatalf("expected 0.495h to be excluded, got %+v", got)
	}
	if got := Aggregate(records, testConfig(0.49), nil); len(got) != 1 || got[0].Playtime != 0.49 {
		t.Fatalf("expected playtime 0.49, got %+v", got)
	}
}

func TestBuild_MissingDirIsFatal(t *testing.T) {
	cfg := testConfig(0.5)
	cfg.StatsDir = filepath.Join(t.TempDir(), "world", "stats")

	_, err := Build(cfg, nil, zaptest.NewLogger(t))
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("want ErrMissingInput, got %v", err)
	}
}

func TestBuild_EmptyDir(t *testing.T) {
	cfg := testConfig(0.5)
	cfg.StatsDir = t.TempDir()

	res, err := Build(cfg, nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Players) != 0 || res.Scanned != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}
