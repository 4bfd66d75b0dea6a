// Package localization loads the shared, read-only key-to-translation
// table the datasheet decoder consults when rendering string cells
// (spec.md §3 "LocalizationMap", §4.4 "Localization").
//
// Population happens once before any decode runs (Load/Set); after
// that every Decompressor only reads Resolve concurrently, and a plain
// map with no writes in flight needs no lock — no concurrent-map
// library appears anywhere in the example pack, so this plain,
// frozen-after-population map is the stdlib-idiomatic fit rather than
// an invented dependency.
package localization

import (
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// Prefix marks a datasheet string literal as a localization key
// (spec.md §4.4: "the engine's localization prefix, an '@' glyph").
const Prefix = "@"

// Map is a concurrent, read-optimized key -> translation lookup. A
// missing key, or a key explicitly mapped to no translation, both
// render as the original literal (spec.md invariant 7).
type Map struct {
	table map[string]*string
}

// New returns an empty Map.
func New() *Map {
	return &Map{table: make(map[string]*string)}
}

// Load reads a JSON object of key -> translation (or null) pairs.
func Load(r io.Reader) (*Map, error) {
	var raw map[string]*string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = make(map[string]*string)
	}
	return &Map{table: raw}, nil
}

// Set installs a translation for key. Not safe to call concurrently
// with Resolve; intended for population before any decoder runs.
func (m *Map) Set(key string, value string) {
	m.table[key] = &value
}

// Resolve returns literal's translation if literal starts with Prefix
// and a mapped, non-nil translation exists; otherwise literal itself.
func (m *Map) Resolve(literal string) string {
	if m == nil || !strings.HasPrefix(literal, Prefix) {
		return literal
	}
	if v, ok := m.table[literal]; ok && v != nil {
		return *v
	}
	return literal
}
