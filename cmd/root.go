package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pable/go-mc-stats/internal/config"
)

var (
	configPath string
	verbose    bool
	statsDir   string
	userCache  string
	minHours   float64

	// cfg and log are populated by the root pre-run hook.
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mcstats",
	Short: "Minecraft server statistics report",
	Long: `Read per-player stats files from a Minecraft world, rank players on
configurable leaderboards, and render a static HTML report.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file (default: $MCSTATS_CONFIG)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&statsDir, "stats", "", "directory of <uuid>.json stats files (overrides stats_dir)")
	pf.StringVar(&userCache, "usercache", "", "usercache.json for display names (overrides usercache)")
	pf.Float64Var(&minHours, "min-hours", 0, "minimum playtime in hours (overrides min_playtime_hours)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(sqlCmd)
}

// setup loads configuration, applies flag overrides, and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("stats") {
		c.StatsDir = statsDir
	}
	if flags.Changed("usercache") {
		c.UserCache = userCache
	}
	if flags.Changed("min-hours") {
		c.MinPlaytimeHours = minHours
	}
	if flags.Changed("out") {
		c.Output = outPath
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if verbose {
		c.LogLevel = "debug"
	}

	l, err := newLogger(c.LogLevel)
	if err != nil {
		return err
	}
	cfg, log = c, l
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: log_level: %v", config.ErrInvalidConfig, err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	zc.DisableCaller = !verbose
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zc.Build()
}
