// Package hashdict loads the shared, read-only hash-to-name table the
// object-stream decoder uses to resolve type-id and member-name
// hashes (spec.md §3 "HashDictionary", §4.3 "Hash-to-name
// resolution").
package hashdict

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Dictionary maps a 32-bit hash to its human-readable name. Like
// localization.Map, it is populated once before any decoder runs and
// only read afterward, so a plain map needs no lock during decoding.
type Dictionary struct {
	table map[uint32]string
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{table: make(map[uint32]string)}
}

// Load reads a two-column CSV of hash,name rows. hash may be decimal
// or 0x-prefixed hexadecimal.
func Load(r io.Reader) (*Dictionary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	d := New()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		hash, err := strconv.ParseUint(record[0], 0, 32)
		if err != nil {
			return nil, fmt.Errorf("hashdict: invalid hash %q: %w", record[0], err)
		}
		d.table[uint32(hash)] = record[1]
	}
	return d, nil
}

// Set installs a name for hash. Not safe to call concurrently with
// Resolve.
func (d *Dictionary) Set(hash uint32, name string) {
	d.table[hash] = name
}

// Resolve returns hash's name if known, otherwise its hexadecimal
// string fallback (spec.md §4.3: "unresolved hashes are rendered as
// their hexadecimal string").
func (d *Dictionary) Resolve(hash uint32) string {
	if d != nil {
		if name, ok := d.table[hash]; ok {
			return name
		}
	}
	return fmt.Sprintf("%08x", hash)
}
