package aggregator

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pable/go-mc-stats/internal/config"
	"github.com/pable/go-mc-stats/internal/extractor"
	"github.com/pable/go-mc-stats/internal/identity"
	"github.com/pable/go-mc-stats/internal/model"
	"github.com/pable/go-mc-stats/internal/parser"
	"github.com/pable/go-mc-stats/internal/units"
)

// ErrMissingInput is returned by Build when the stats directory does not exist.
var ErrMissingInput = errors.New("stats directory not found")

// Result is the outcome of one Build run.
type Result struct {
	Players  []model.PlayerRecord
	Scanned  int // stats files discovered
	Skipped  int // files that could not be read or parsed
	Filtered int // parsed players below the playtime threshold
}

// Build discovers and parses every stats file under cfg.StatsDir and
// aggregates the readable ones. Unreadable or malformed files are logged and
// skipped; only a missing directory is fatal.
func Build(cfg *config.Config, table *identity.Table, log *zap.Logger) (*Result, error) {
	files, err := parser.Discover(cfg.StatsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, cfg.StatsDir)
		}
		return nil, fmt.Errorf("discover stats: %w", err)
	}
	log.Debug("scanning stats", zap.String("dir", cfg.StatsDir), zap.Int("files", len(files)))

	res := &Result{Scanned: len(files)}
	records := make([]model.RawPlayerRecord, 0, len(files))
	for _, path := range files {
		rec, err := parser.ParseFile(path)
		if err != nil {
			res.Skipped++
			log.Warn("skipping stats file", zap.String("file", path), zap.Error(err))
			continue
		}
		records = append(records, *rec)
	}

	res.Players = Aggregate(records, cfg, table)
	res.Filtered = len(records) - len(res.Players)
	return res, nil
}

// Aggregate turns raw records into display records, in input order. Players
// whose playtime is below cfg.MinPlaytimeHours are dropped. cfg must have
// passed Validate.
func Aggregate(records []model.RawPlayerRecord, cfg *config.Config, table *identity.Table) []model.PlayerRecord {
	playtimeDef, _ := cfg.PlaytimeDefinition()

	var out []model.PlayerRecord
	for i := range records {
		rec := &records[i]

		hours := Playtime(rec.Stats, playtimeDef, cfg.Playtime.FallbackKeys)
		if hours < cfg.MinPlaytimeHours {
			continue
		}

		p := model.PlayerRecord{
			Name:     table.Resolve(rec.ID),
			ID:       rec.ID,
			Playtime: hours,
			Metrics:  make(map[string]float64, len(cfg.Leaderboards)),
			Notables: make(map[string]float64, len(cfg.Notables)),
		}
		p.Metrics[playtimeDef.ID] = hours

		for _, def := range cfg.Leaderboards {
			if def.ID == playtimeDef.ID {
				continue
			}
			p.Metrics[def.ID] = extractor.Value(rec.Stats, def)
		}
		for _, def := range cfg.Notables {
			p.Notables[def.Label] = extractor.Value(rec.Stats, def)
		}
		out = append(out, p)
	}
	return out
}

// Playtime reads the playtime counter for def, trying each fallback key in
// the same category while the value is still zero, and converts it to hours.
// A definition without a unit is assumed to count ticks.
func Playtime(stats model.Stats, def model.MetricDefinition, fallbackKeys []string) float64 {
	raw := extractor.Extract(stats, def.Category, def.Key, model.ModeStat)
	for _, key := range fallbackKeys {
		if raw != 0 {
			break
		}
		raw = extractor.Extract(stats, def.Category, key, model.ModeStat)
	}
	if !def.HasUnit() {
		return units.TicksToHours(raw)
	}
	return units.Convert(raw, def.Unit)
}
