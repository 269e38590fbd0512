package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-mc-stats/internal/report"
	"github.com/pable/go-mc-stats/internal/telemetry"
	"github.com/pable/go-mc-stats/internal/watch"
)

var (
	outPath       string
	genGzip       bool
	genMetricFile string
	genWatch      bool
	genDebounce   time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the HTML stats report",
	Long: `Scan the stats directory, aggregate every player above the playtime
threshold, and write a self-contained HTML report with a chart per leaderboard
and a top list per notable stat.

With --watch the command keeps running and rebuilds the whole report whenever
a stats file or the user cache changes.

Examples:
  mcstats generate --stats /srv/mc/world/stats --usercache /srv/mc/usercache.json
  mcstats generate --out /var/www/stats/index.html --gzip --watch`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&outPath, "out", "o", "", "output HTML path (overrides output)")
	generateCmd.Flags().BoolVar(&genGzip, "gzip", false, "also write a precompressed <out>.gz")
	generateCmd.Flags().StringVar(&genMetricFile, "metrics-file", "", "write run metrics in Prometheus textfile format")
	generateCmd.Flags().BoolVar(&genWatch, "watch", false, "rebuild whenever the stats change")
	generateCmd.Flags().DurationVar(&genDebounce, "debounce", watch.DefaultDebounce, "quiet period before a watched rebuild")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := generateOnce(); err != nil {
		return err
	}
	if !genWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dirs := []string{cfg.StatsDir}
	if cacheDir := filepath.Dir(cfg.UserCache); cacheDir != filepath.Clean(cfg.StatsDir) {
		dirs = append(dirs, cacheDir)
	}
	w := &watch.Watcher{
		Dirs:     dirs,
		Match:    watch.Files(".json", filepath.Base(cfg.UserCache)),
		Debounce: genDebounce,
		Log:      log,
		OnChange: func() {
			if err := generateOnce(); err != nil {
				log.Error("rebuild failed", zap.Error(err))
			}
		},
	}
	return w.Run(ctx)
}

// generateOnce runs one full build and writes the report.
func generateOnce() error {
	started := time.Now()
	res, err := loadPlayers()
	if err != nil {
		return err
	}

	finished := time.Now()
	err = report.WriteFile(cfg.Output, cfg, res.Players, finished, genGzip)
	if errors.Is(err, report.ErrEmptyResult) {
		fmt.Fprintln(os.Stdout, "No player data found or all players below playtime threshold.")
	} else if err != nil {
		return fmt.Errorf("write report: %w", err)
	} else {
		fmt.Fprintf(os.Stdout, "Processed %d players.\n", len(res.Players))
		fmt.Fprintf(os.Stdout, "Successfully generated %s\n", cfg.Output)
	}

	if genMetricFile != "" {
		run := telemetry.NewRun()
		run.Observe(res, report.LeaderboardBoards(res.Players, cfg.Leaderboards, 1), started, time.Now())
		if err := run.WriteTextfile(genMetricFile); err != nil {
			return err
		}
	}
	return nil
}
