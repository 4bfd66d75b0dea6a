package datasheet

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/deploymenttheory/pakdecode/internal/localization"
)

// rowPair and rowObject give each row an ordered JSON object keyed by
// column name in column order, since a plain map cannot preserve that
// order (spec.md invariant 3: "column order is preserved on render").
type rowPair struct {
	key   string
	value interface{}
}

type rowObject []rowPair

func (o rowObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Datasheet) rows(loc *localization.Map) []rowObject {
	out := make([]rowObject, len(d.Rows))
	for i, row := range d.Rows {
		obj := make(rowObject, len(d.Columns))
		for j, col := range d.Columns {
			obj[j] = rowPair{col.Name, cellValue(row[j], col, loc)}
		}
		out[i] = obj
	}
	return out
}

func cellValue(c Cell, col Column, loc *localization.Map) interface{} {
	switch col.Type {
	case CellInt32:
		return c.Int32
	case CellFloat32:
		return c.Float
	case CellBool:
		return c.Bool
	case CellString:
		return loc.Resolve(c.String)
	default:
		return nil
	}
}

// MarshalJSONCompact renders d as compact JSON (DatasheetFormat Mini).
func MarshalJSONCompact(d *Datasheet, loc *localization.Map) ([]byte, error) {
	return json.Marshal(d.rows(loc))
}

// MarshalJSONIndent renders d as indented JSON (DatasheetFormat
// Pretty).
func MarshalJSONIndent(d *Datasheet, loc *localization.Map) ([]byte, error) {
	compact, err := MarshalJSONCompact(d, loc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
