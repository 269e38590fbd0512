package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mc-stats/internal/model"
	"github.com/pable/go-mc-stats/internal/report"
)

var (
	topLimit    int
	topNotables bool
)

var topCmd = &cobra.Command{
	Use:   "top [metric]",
	Short: "Print leaderboards in the terminal",
	Long: `Print the ranked leaderboards without writing the HTML report.

With no argument every leaderboard is printed. A metric can be named by its
id or label, and notable stats are searched too.

Examples:
  mcstats top
  mcstats top mob_kills --limit 3
  mcstats top "Bells Rung"
  mcstats top --notables`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTop,
}

func init() {
	topCmd.Flags().IntVarP(&topLimit, "limit", "n", 0, "entries per board (default: leaderboard_top / notable_top)")
	topCmd.Flags().BoolVar(&topNotables, "notables", false, "also print every notable stat")
}

func runTop(cmd *cobra.Command, args []string) error {
	res, ok, err := loadQualifyingPlayers()
	if err != nil || !ok {
		return err
	}

	lbTop, ntTop := cfg.LeaderboardTop, cfg.NotableTop
	if topLimit > 0 {
		lbTop, ntTop = topLimit, topLimit
	}

	if len(args) == 1 {
		if def, found := cfg.FindLeaderboard(args[0]); found {
			report.PrintBoards(os.Stdout, report.LeaderboardBoards(res.Players, []model.MetricDefinition{def}, lbTop))
			return nil
		}
		if def, found := cfg.FindNotable(args[0]); found {
			report.PrintBoards(os.Stdout, report.NotableBoards(res.Players, []model.MetricDefinition{def}, ntTop))
			return nil
		}
		return fmt.Errorf("unknown metric %q (see 'mcstats metrics')", args[0])
	}

	report.PrintBoards(os.Stdout, report.LeaderboardBoards(res.Players, cfg.Leaderboards, lbTop))
	if topNotables {
		report.PrintBoards(os.Stdout, report.NotableBoards(res.Players, cfg.Notables, ntTop))
	}
	return nil
}
