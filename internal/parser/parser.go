package parser

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/pable/go-mc-stats/internal/identity"
	"github.com/pable/go-mc-stats/internal/model"
)

// StatsExt is the extension of per-player stats files.
const StatsExt = ".json"

// wrapperKey is the top-level key newer servers nest categories under.
const wrapperKey = "stats"

// ErrMalformedRecord marks a stats file whose content could not be parsed.
var ErrMalformedRecord = errors.New("malformed stats record")

// Discover lists the stats files in dir in lexical order. It returns an error
// wrapping os.ErrNotExist when dir is absent.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat stats dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("stats dir %s: not a directory: %w", dir, os.ErrNotExist)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*"+StatsExt))
	if err != nil {
		return nil, fmt.Errorf("glob stats files: %w", err)
	}
	return files, nil
}

// IDFromPath derives the normalized player identifier from a stats file name.
func IDFromPath(path string) string {
	base := filepath.Base(path)
	return identity.NormalizeID(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ParseFile reads and parses one stats file.
func ParseFile(path string) (*model.RawPlayerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stats file: %w", err)
	}
	rec, err := Parse(data)
	if err != nil {
		return nil, err
	}
	rec.ID = IDFromPath(path)
	rec.Source = path
	return rec, nil
}

// Parse decodes a stats document. Categories may sit at the top level or
// under a "stats" wrapper; the wrapper wins when it is a non-empty object.
// Non-object categories and non-numeric values are dropped. A number that
// overflows float64 rejects the whole record.
func Parse(data []byte) (*model.RawPlayerRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedRecord)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedRecord)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is %s, not an object", ErrMalformedRecord, root.Type)
	}

	statsRoot := root
	if wrapped := root.Get(wrapperKey); wrapped.IsObject() && len(wrapped.Map()) > 0 {
		statsRoot = wrapped
	}

	stats := make(model.Stats)
	var bad error
	statsRoot.ForEach(func(category, values gjson.Result) bool {
		if !values.IsObject() {
			return true
		}
		counters := make(map[string]float64)
		values.ForEach(func(key, v gjson.Result) bool {
			if v.Type != gjson.Number {
				return true
			}
			f := v.Float()
			if math.IsInf(f, 0) || math.IsNaN(f) {
				bad = fmt.Errorf("%w: %s/%s: %s is out of range", ErrMalformedRecord, category.String(), key.String(), v.Raw)
				return false
			}
			counters[key.String()] = f
			return true
		})
		if bad != nil {
			return false
		}
		stats[category.String()] = counters
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return &model.RawPlayerRecord{Stats: stats}, nil
}
