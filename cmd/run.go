package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pable/go-mc-stats/internal/aggregator"
	"github.com/pable/go-mc-stats/internal/identity"
)

// loadPlayers runs the aggregation pipeline with the active config.
func loadPlayers() (*aggregator.Result, error) {
	table := identity.LoadTable(cfg.UserCache, log)
	res, err := aggregator.Build(cfg, table, log)
	if err != nil {
		return nil, err
	}
	log.Debug("aggregated players",
		zap.Int("scanned", res.Scanned),
		zap.Int("skipped", res.Skipped),
		zap.Int("filtered", res.Filtered),
		zap.Int("players", len(res.Players)))
	return res, nil
}

// loadQualifyingPlayers is loadPlayers for read-only commands: an empty result
// prints a notice and returns ok=false.
func loadQualifyingPlayers() (res *aggregator.Result, ok bool, err error) {
	res, err = loadPlayers()
	if err != nil {
		return nil, false, err
	}
	if len(res.Players) == 0 {
		fmt.Fprintf(os.Stdout, "No players with at least %.2fh of playtime in %s.\n", cfg.MinPlaytimeHours, cfg.StatsDir)
		return res, false, nil
	}
	return res, true, nil
}
