package report

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pable/go-mc-stats/internal/config"
	"github.com/pable/go-mc-stats/internal/model"
)

//go:embed template.html
var pageTemplate string

var page = template.Must(template.New("report").Parse(pageTemplate))

// defaultChartColor is used for leaderboards without a configured colour.
const defaultChartColor = "#36a2eb"

// TimestampLayout is the "Last Updated" format.
const TimestampLayout = "2006-01-02 15:04"

// ErrEmptyResult is returned when there are no players to render.
var ErrEmptyResult = errors.New("no player data found or all players below playtime threshold")

// chart is the per-leaderboard payload handed to Chart.js.
type chart struct {
	ID     string    `json:"id"`
	Label  string    `json:"label"`
	Color  string    `json:"color"`
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

type pageData struct {
	Title        string
	Banner       template.HTML
	Generated    string
	Leaderboards []Board
	Notables     []Board
	Charts       []chart
}

// Document holds everything needed to render one report.
type Document struct {
	Title        string
	Banner       template.HTML // already sanitized
	Generated    time.Time
	Leaderboards []Board
	Notables     []Board
}

// NewDocument ranks players against the configured tables. BannerHTML is
// passed through a user-content sanitizer.
func NewDocument(cfg *config.Config, players []model.PlayerRecord, now time.Time) *Document {
	return &Document{
		Title:        cfg.Title,
		Banner:       SanitizeBanner(cfg.BannerHTML),
		Generated:    now,
		Leaderboards: LeaderboardBoards(players, cfg.Leaderboards, cfg.LeaderboardTop),
		Notables:     NotableBoards(players, cfg.Notables, cfg.NotableTop),
	}
}

// SanitizeBanner strips anything but basic formatting and links from s.
func SanitizeBanner(s string) template.HTML {
	if s == "" {
		return ""
	}
	return template.HTML(bluemonday.UGCPolicy().Sanitize(s)) //nolint:gosec // sanitized above
}

// RenderHTML writes the report page for doc.
func RenderHTML(w io.Writer, doc *Document) error {
	data := pageData{
		Title:        doc.Title,
		Banner:       doc.Banner,
		Generated:    doc.Generated.Format(TimestampLayout),
		Leaderboards: doc.Leaderboards,
		Notables:     doc.Notables,
		Charts:       make([]chart, 0, len(doc.Leaderboards)),
	}
	for _, b := range doc.Leaderboards {
		c := chart{
			ID:     b.ID,
			Label:  b.Label,
			Color:  b.Color,
			Names:  make([]string, len(b.Entries)),
			Values: make([]float64, len(b.Entries)),
		}
		if c.Color == "" {
			c.Color = defaultChartColor
		}
		for i, e := range b.Entries {
			c.Names[i] = e.Name
			c.Values[i] = e.Value
		}
		data.Charts = append(data.Charts, c)
	}
	return page.Execute(w, data)
}

// WriteFile renders the report for players to path, replacing any previous
// file atomically. With compress set, a gzip copy is written to path+".gz".
func WriteFile(path string, cfg *config.Config, players []model.PlayerRecord, now time.Time, compress bool) error {
	if len(players) == 0 {
		return ErrEmptyResult
	}

	var buf bytes.Buffer
	if err := RenderHTML(&buf, NewDocument(cfg, players, now)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	if !compress {
		return nil
	}

	var gz bytes.Buffer
	zw, err := gzip.NewWriterLevel(&gz, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("gzip report: %w", err)
	}
	zw.Name = filepath.Base(path)
	zw.ModTime = now
	if _, err := zw.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("gzip report: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("gzip report: %w", err)
	}
	return writeAtomic(path+".gz", gz.Bytes())
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
