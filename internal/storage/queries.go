package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-mc-stats/internal/config"
	"github.com/pable/go-mc-stats/internal/model"
)

// InsertPlayers bulk-inserts players with their metrics and notables in one
// transaction. position records discovery order.
func (db *DB) InsertPlayers(players []model.PlayerRecord, cfg *config.Config) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	playerStmt, err := tx.Prepare(`INSERT OR REPLACE INTO players(uuid, name, playtime, position) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	metricStmt, err := tx.Prepare(`INSERT OR REPLACE INTO player_metrics(uuid, metric_id, label, value) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer metricStmt.Close()

	notableStmt, err := tx.Prepare(`INSERT OR REPLACE INTO player_notables(uuid, label, value) VALUES (?,?,?)`)
	if err != nil {
		return err
	}
	defer notableStmt.Close()

	for i, p := range players {
		if _, err := playerStmt.Exec(p.ID, p.Name, p.Playtime, i); err != nil {
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
		for _, def := range cfg.Leaderboards {
			if _, err := metricStmt.Exec(p.ID, def.ID, def.Label, p.Metric(def.ID)); err != nil {
				return fmt.Errorf("insert metric %s for %s: %w", def.ID, p.ID, err)
			}
		}
		for _, def := range cfg.Notables {
			if _, err := notableStmt.Exec(p.ID, def.Label, p.Notable(def.Label)); err != nil {
				return fmt.Errorf("insert notable %q for %s: %w", def.Label, p.ID, err)
			}
		}
	}
	return tx.Commit()
}

// CountPlayers returns the number of stored players.
func (db *DB) CountPlayers() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM players").Scan(&n)
	return n, err
}

// QueryRaw runs an arbitrary query and returns column names and rows with
// every value rendered as a string. NULL renders as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns: %w", err)
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
