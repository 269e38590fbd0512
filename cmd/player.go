package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-mc-stats/internal/identity"
	"github.com/pable/go-mc-stats/internal/model"
	"github.com/pable/go-mc-stats/internal/report"
)

// playerCmd prints one or more player cards.
var playerCmd = &cobra.Command{
	Use:   "player <name|uuid> [<name|uuid>...]",
	Short: "Show every stat and rank for a player",
	Long: `Show a player's value and position on every leaderboard and notable stat.

Players are matched by display name (case-insensitive) or by UUID prefix,
with or without dashes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	res, ok, err := loadQualifyingPlayers()
	if err != nil || !ok {
		return err
	}

	for _, arg := range args {
		p, err := findPlayer(res.Players, arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		report.PrintPlayerCard(os.Stdout, p, res.Players, cfg)
	}
	return nil
}

// findPlayer matches an exact name first, then a unique UUID prefix.
func findPlayer(players []model.PlayerRecord, query string) (*model.PlayerRecord, error) {
	for i := range players {
		if strings.EqualFold(players[i].Name, query) {
			return &players[i], nil
		}
	}

	prefix := identity.NormalizeID(query)
	var match *model.PlayerRecord
	for i := range players {
		if !strings.HasPrefix(identity.NormalizeID(players[i].ID), prefix) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%q matches more than one player", query)
		}
		match = &players[i]
	}
	if match == nil {
		return nil, fmt.Errorf("no qualifying player matches %q", query)
	}
	return match, nil
}
