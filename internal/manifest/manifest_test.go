package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deploymenttheory/pakdecode/internal/pak/datasheet"
)

func sampleDatasheet() *datasheet.Datasheet {
	return &datasheet.Datasheet{
		Category: "stats",
		Name:     "weapons",
		Columns: []datasheet.Column{
			{Name: "id", Type: datasheet.CellInt32},
		},
		Rows: [][]datasheet.Cell{{{Int32: 1}}},
	}
}

func TestRecordDeduplicatesByContentHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.Record("a/weapons.json", sampleDatasheet())
	m.Record("b/weapons.json", sampleDatasheet())

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("manifest file is empty")
	}

	m2, err := New(path)
	if err != nil {
		t.Fatalf("reloading manifest: %v", err)
	}
	if len(m2.doc.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1 (duplicate content should be deduplicated)", len(m2.doc.Entries))
	}
}

func TestRecordDistinctContentNotDeduplicated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.Record("a/weapons.json", sampleDatasheet())

	other := sampleDatasheet()
	other.Name = "armor"
	m.Record("b/armor.json", other)

	if len(m.doc.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(m.doc.Entries))
	}
}
