package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "MCSTATS_"
	envFileVar = "MCSTATS_CONFIG"
)

// Load builds a Config by layering defaults, an optional YAML file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file at path, or at $MCSTATS_CONFIG when path is empty
//  3. env (prefix MCSTATS_; a double underscore descends a level, so
//     MCSTATS_PLAYTIME__METRIC sets playtime.metric)
//
// A file that sets leaderboards or notables replaces the default table
// rather than merging into it. The result is validated.
func Load(path string) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envFileVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}
	// The file-path variable is not a config key.
	k.Delete("config")

	cfg := *base
	if k.Exists("leaderboards") {
		cfg.Leaderboards = nil
	}
	if k.Exists("notables") {
		cfg.Notables = nil
	}
	if k.Exists("playtime.fallback_keys") {
		cfg.Playtime.FallbackKeys = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
