package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mc-stats/internal/report"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the configured leaderboards and notable stats",
	Long: `Print the effective metric tables after defaults, config file, and
environment overrides are applied. IDs and labels shown here are what
'mcstats top' accepts.`,
	Args: cobra.NoArgs,
	RunE: runMetrics,
}

func runMetrics(cmd *cobra.Command, args []string) error {
	report.PrintDefinitions(os.Stdout, "Leaderboards", cfg.Leaderboards)
	report.PrintDefinitions(os.Stdout, "Notable stats", cfg.Notables)
	fmt.Fprintf(os.Stdout, "\nPlaytime metric: %s (fallback keys: %v)\n", cfg.Playtime.Metric, cfg.Playtime.FallbackKeys)
	return nil
}
