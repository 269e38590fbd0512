package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-mc-stats/internal/report"
)

var listSort string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List qualifying players",
	Long: `List every player above the playtime threshold with their UUID and hours.

--sort accepts "found" (stats file order), "name", or "hours".`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listSort, "sort", "hours", `row order: "found", "name", or "hours"`)
}

func runList(cmd *cobra.Command, args []string) error {
	res, ok, err := loadQualifyingPlayers()
	if err != nil || !ok {
		return err
	}

	players := res.Players
	switch listSort {
	case "found":
	case "name":
		sort.SliceStable(players, func(i, j int) bool {
			return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
		})
	case "hours":
		sort.SliceStable(players, func(i, j int) bool { return players[i].Playtime > players[j].Playtime })
	default:
		return fmt.Errorf("unknown sort %q (want found, name, or hours)", listSort)
	}

	report.PrintPlayerList(os.Stdout, players)
	return nil
}
