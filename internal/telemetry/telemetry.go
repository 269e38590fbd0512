// Package telemetry records run metrics for the node_exporter textfile
// collector.
package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pable/go-mc-stats/internal/aggregator"
	"github.com/pable/go-mc-stats/internal/report"
)

const namespace = "mcstats"

// Run holds the gauges describing one report generation.
type Run struct {
	reg *prometheus.Registry

	players   prometheus.Gauge
	scanned   prometheus.Gauge
	skipped   prometheus.Gauge
	filtered  prometheus.Gauge
	duration  prometheus.Gauge
	timestamp prometheus.Gauge
	leader    *prometheus.GaugeVec
}

// NewRun registers the run gauges on a fresh registry.
func NewRun() *Run {
	r := &Run{
		reg: prometheus.NewRegistry(),
		players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "players",
			Help: "Players that passed the playtime threshold.",
		}),
		scanned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "records_scanned",
			Help: "Stats files discovered.",
		}),
		skipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "records_skipped",
			Help: "Stats files that could not be read or parsed.",
		}),
		filtered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "records_filtered",
			Help: "Parsed players below the playtime threshold.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "generation_duration_seconds",
			Help: "Wall time of the last generation.",
		}),
		timestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_generation_timestamp_seconds",
			Help: "Unix time of the last generation.",
		}),
		leader: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "leaderboard_top_value",
			Help: "Value held by the first-ranked player of each leaderboard.",
		}, []string{"metric", "player"}),
	}
	r.reg.MustRegister(r.players, r.scanned, r.skipped, r.filtered, r.duration, r.timestamp, r.leader)
	return r
}

// Observe records the outcome of a Build and the leaderboards rendered from it.
func (r *Run) Observe(res *aggregator.Result, boards []report.Board, started, finished time.Time) {
	r.players.Set(float64(len(res.Players)))
	r.scanned.Set(float64(res.Scanned))
	r.skipped.Set(float64(res.Skipped))
	r.filtered.Set(float64(res.Filtered))
	r.duration.Set(finished.Sub(started).Seconds())
	r.timestamp.Set(float64(finished.Unix()))

	r.leader.Reset()
	for _, b := range boards {
		if len(b.Entries) == 0 {
			continue
		}
		top := b.Entries[0]
		r.leader.WithLabelValues(b.ID, top.Name).Set(top.Value)
	}
}

// Registry exposes the underlying registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.reg
}

// WriteTextfile writes the gauges in exposition format to path.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
