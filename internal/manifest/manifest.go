// Package manifest accumulates side-band metadata produced while
// extracting datasheets, grounded on the teacher's JSONStorage (same
// mutex-guarded data/hashIndex/saveToFile shape, generalized from
// "processed installer file" records to "decoded datasheet" records).
package manifest

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/crypto/sha3"

	"github.com/deploymenttheory/pakdecode/internal/pak/datasheet"
)

// Entry is one indexed datasheet.
type Entry struct {
	Path        string `json:"path"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	ContentHash string `json:"content_hash"`
}

// document is the on-disk manifest shape.
type document struct {
	LastUpdated time.Time `json:"last_updated"`
	Entries     []Entry   `json:"entries"`
}

// Manifest records every successfully parsed Datasheet for downstream
// indexing (spec.md §6 "SideBand::Datasheet"), deduplicating by
// content hash and persisting to a JSON file.
type Manifest struct {
	filePath string

	mutex     sync.Mutex
	doc       document
	hashIndex map[string]bool
}

// New creates a Manifest backed by filePath. Any existing manifest at
// that path is loaded so a re-run extends rather than clobbers it.
func New(filePath string) (*Manifest, error) {
	m := &Manifest{
		filePath:  filePath,
		hashIndex: make(map[string]bool),
		doc:       document{LastUpdated: time.Now()},
	}

	if filePath == "" {
		return m, nil
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := m.load(); err != nil {
			return nil, fmt.Errorf("manifest: loading %s: %w", filePath, err)
		}
	}
	return m, nil
}

func (m *Manifest) load() error {
	raw, err := os.ReadFile(m.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, &m.doc); err != nil {
		return err
	}
	for _, e := range m.doc.Entries {
		m.hashIndex[e.ContentHash] = true
	}
	return nil
}

// Record indexes ds under path, deduplicating by a content hash of
// its structural shape (category, name, columns, row count). A
// duplicate is silently dropped.
func (m *Manifest) Record(path string, ds *datasheet.Datasheet) {
	hash := contentHash(ds)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.hashIndex[hash] {
		return
	}

	m.doc.Entries = append(m.doc.Entries, Entry{
		Path:        path,
		Category:    ds.Category,
		Name:        ds.Name,
		Columns:     len(ds.Columns),
		Rows:        len(ds.Rows),
		ContentHash: hash,
	})
	m.hashIndex[hash] = true
	m.doc.LastUpdated = time.Now()
}

// Close sorts entries by path and writes the manifest to disk.
func (m *Manifest) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.filePath == "" {
		return nil
	}

	sort.Slice(m.doc.Entries, func(i, j int) bool {
		return m.doc.Entries[i].Path < m.doc.Entries[j].Path
	})
	m.doc.LastUpdated = time.Now()

	out, err := json.MarshalIndent(m.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: marshaling: %w", err)
	}
	if err := os.WriteFile(m.filePath, out, 0o644); err != nil {
		return fmt.Errorf("manifest: writing %s: %w", m.filePath, err)
	}
	return nil
}

func contentHash(ds *datasheet.Datasheet) string {
	h := sha3.New256()
	fmt.Fprintf(h, "%s/%s:%d:%d", ds.Category, ds.Name, len(ds.Columns), len(ds.Rows))
	for _, col := range ds.Columns {
		fmt.Fprintf(h, ":%s=%d", col.Name, col.Type)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
