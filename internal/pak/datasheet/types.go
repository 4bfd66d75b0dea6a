// Package datasheet decodes the engine's binary tabular format
// (spec.md §4.4) and renders it to JSON, YAML, CSV, SQL or raw bytes.
//
// The exact binary layout is not pinned down by spec.md beyond "an
// interned string pool and a row-major grid of typed cells"; this
// implementation's concrete layout (see decode.go) is this repo's own
// invention, chosen for straightforward sequential decoding rather
// than reverse-engineered from any external sample.
package datasheet

// CellType tags one column's storage type.
type CellType uint8

const (
	CellInt32 CellType = iota
	CellFloat32
	CellBool
	CellString // raw string literal; may carry the localization.Prefix
)

// Column is one datasheet column descriptor (spec.md §3 "Datasheet").
type Column struct {
	Name string
	Type CellType
}

// Cell is a single decoded value, stored as one of the four possible
// Go types; which one is valid is determined by the owning Column's
// Type.
type Cell struct {
	Int32  int32
	Float  float32
	Bool   bool
	String string
}

// Datasheet is the decoded table: column descriptors plus a row-major
// grid of cells, one row per slice of Rows (spec.md invariant 3: "the
// decoded struct holds raw literal values; localization resolution
// happens only at render time").
type Datasheet struct {
	Category string
	Name     string
	Columns  []Column
	Rows     [][]Cell
}
