package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-mc-stats/internal/config"
	"github.com/pable/go-mc-stats/internal/model"
)

var (
	cHeader = color.New(color.FgYellow, color.Bold)
	cMuted  = color.New(color.Faint)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintBoard prints one ranked board as a table headed by its label.
func PrintBoard(w io.Writer, b Board) {
	cHeader.Fprintf(w, "\n%s\n", b.Label)
	if len(b.Entries) == 0 {
		cMuted.Fprintln(w, "  (no players)")
		return
	}
	table := newTable(w)
	table.Header("RANK", "PLAYER", "VALUE")
	for _, e := range b.Entries {
		table.Append(e.Medal(), e.Name, e.Display())
	}
	table.Render()
}

// PrintBoards prints each board in order.
func PrintBoards(w io.Writer, boards []Board) {
	for _, b := range boards {
		PrintBoard(w, b)
	}
}

// PrintPlayerList prints one row per player in the given order.
func PrintPlayerList(w io.Writer, players []model.PlayerRecord) {
	table := newTable(w)
	table.Header("NAME", "UUID", "HOURS")
	for _, p := range players {
		table.Append(p.Name, p.ID, fmt.Sprintf("%.2f", p.Playtime))
	}
	table.Render()
}

// PrintPlayerCard prints every leaderboard and notable value for one player,
// with the player's position on each board.
func PrintPlayerCard(w io.Writer, p *model.PlayerRecord, players []model.PlayerRecord, cfg *config.Config) {
	cHeader.Fprintf(w, "\n%s", p.Name)
	cMuted.Fprintf(w, "  %s  %.2fh\n\n", p.ID, p.Playtime)

	table := newTable(w)
	table.Header("LEADERBOARD", "VALUE", "RANK")
	for _, def := range cfg.Leaderboards {
		id := def.ID
		rank := positionOf(p.ID, Rank(players, func(q *model.PlayerRecord) float64 { return q.Metric(id) }, 0))
		table.Append(def.Label, FormatValue(p.Metric(id)), fmt.Sprintf("%d/%d", rank, len(players)))
	}
	table.Render()

	fmt.Fprintln(w)
	nt := newTable(w)
	nt.Header("NOTABLE", "VALUE", "RANK")
	for _, def := range cfg.Notables {
		label := def.Label
		rank := positionOf(p.ID, Rank(players, func(q *model.PlayerRecord) float64 { return q.Notable(label) }, 0))
		nt.Append(label, FormatValue(p.Notable(label)), fmt.Sprintf("%d/%d", rank, len(players)))
	}
	nt.Render()
}

func positionOf(id string, entries []Entry) int {
	for _, e := range entries {
		if e.ID == id {
			return e.Rank
		}
	}
	return 0
}

// PrintDefinitions prints a metric table as configured.
func PrintDefinitions(w io.Writer, title string, defs []model.MetricDefinition) {
	cHeader.Fprintf(w, "\n%s\n", title)
	table := newTable(w)
	table.Header("ID", "LABEL", "CATEGORY", "KEY", "UNIT")
	for _, d := range defs {
		key := d.Key
		if d.EffectiveMode() == model.ModeSum {
			key = "(sum)"
		}
		unit := string(d.Unit)
		if !d.HasUnit() {
			unit = "—"
		}
		table.Append(d.ID, d.Label, d.Category, key, unit)
	}
	table.Render()
}
