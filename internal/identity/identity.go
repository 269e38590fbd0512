// Package identity maps opaque player identifiers to display names using the
// server's user cache.
package identity

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// fallbackLen is how many identifier characters stand in for an unknown name.
const fallbackLen = 8

// Table maps normalized identifiers to display names. It is read-only once
// loaded.
type Table struct {
	names map[string]string
}

// NewTable builds a Table from identifier -> name pairs. Keys are normalized.
func NewTable(pairs map[string]string) *Table {
	t := &Table{names: make(map[string]string, len(pairs))}
	for id, name := range pairs {
		t.names[NormalizeID(id)] = name
	}
	return t
}

// LoadTable reads a user cache file: a JSON array of {"uuid", "name", ...}.
// A missing or malformed file yields an empty table and a warning; it never
// fails.
func LoadTable(path string, log *zap.Logger) *Table {
	t, err := readTable(path)
	if err != nil {
		log.Warn("could not read user cache, names fall back to truncated ids",
			zap.String("path", path), zap.Error(err))
		return &Table{names: map[string]string{}}
	}
	log.Debug("loaded user cache", zap.String("path", path), zap.Int("entries", t.Len()))
	return t
}

func readTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read user cache: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse user cache: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("parse user cache: expected array, got %s", root.Type)
	}

	t := &Table{names: make(map[string]string)}
	root.ForEach(func(_, entry gjson.Result) bool {
		id := NormalizeID(entry.Get("uuid").String())
		name := entry.Get("name").String()
		if name == "" {
			name = "Unknown"
		}
		t.names[id] = name
		return true
	})
	return t, nil
}

// Resolve returns the display name for id, or the first eight characters of
// id when the table has no entry. Distinct ids sharing a prefix collide.
func (t *Table) Resolve(id string) string {
	if t != nil {
		if name, ok := t.names[id]; ok {
			return name
		}
	}
	if len(id) > fallbackLen {
		return id[:fallbackLen]
	}
	return id
}

// Len returns the number of cached identities.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// NormalizeID lowercases s and strips separators. Any form uuid.Parse accepts
// (dashed, braced, urn:uuid:) collapses to the 32 hex digit form.
func NormalizeID(s string) string {
	s = strings.TrimSpace(s)
	if u, err := uuid.Parse(s); err == nil {
		return strings.ReplaceAll(u.String(), "-", "")
	}
	return strings.ToLower(strings.ReplaceAll(s, "-", ""))
}
