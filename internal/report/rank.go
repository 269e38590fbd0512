package report

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/pable/go-mc-stats/internal/model"
)

// Entry is one row of a ranked list.
type Entry struct {
	Rank  int // 1-based
	Name  string
	ID    string
	Value float64
}

// Medal returns the podium marker for the entry's rank.
func (e Entry) Medal() string {
	return Medal(e.Rank)
}

// Display formats the entry's value with thousands separators.
func (e Entry) Display() string {
	return FormatValue(e.Value)
}

// Board is a ranked top-N view of one metric.
type Board struct {
	ID      string
	Label   string
	Color   string
	Entries []Entry
}

// Rank orders players by value descending and keeps the first n. The sort is
// stable, so ties keep their input order. n <= 0 keeps everyone.
func Rank(players []model.PlayerRecord, value func(*model.PlayerRecord) float64, n int) []Entry {
	idx := make([]int, len(players))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return value(&players[idx[a]]) > value(&players[idx[b]])
	})
	if n > 0 && len(idx) > n {
		idx = idx[:n]
	}

	entries := make([]Entry, len(idx))
	for i, pi := range idx {
		p := &players[pi]
		entries[i] = Entry{Rank: i + 1, Name: p.Name, ID: p.ID, Value: value(p)}
	}
	return entries
}

// LeaderboardBoards ranks every leaderboard definition, in table order.
func LeaderboardBoards(players []model.PlayerRecord, defs []model.MetricDefinition, n int) []Board {
	boards := make([]Board, 0, len(defs))
	for _, def := range defs {
		id := def.ID
		boards = append(boards, Board{
			ID:    id,
			Label: def.Label,
			Color: def.Color,
			Entries: Rank(players, func(p *model.PlayerRecord) float64 {
				return p.Metric(id)
			}, n),
		})
	}
	return boards
}

// NotableBoards ranks every notable definition, in table order.
func NotableBoards(players []model.PlayerRecord, defs []model.MetricDefinition, n int) []Board {
	boards := make([]Board, 0, len(defs))
	for _, def := range defs {
		label := def.Label
		boards = append(boards, Board{
			ID:    label,
			Label: label,
			Color: def.Color,
			Entries: Rank(players, func(p *model.PlayerRecord) float64 {
				return p.Notable(label)
			}, n),
		})
	}
	return boards
}

// Medal returns 🥇, 🥈, 🥉 for the podium and "N." below it.
func Medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

// FormatValue renders v with thousands separators, dropping a zero fraction.
func FormatValue(v float64) string {
	return humanize.Commaf(v)
}
