package datasheet

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/deploymenttheory/pakdecode/internal/localization"
)

// MarshalCSV renders d as RFC 4180 CSV with a header row of column
// names (DatasheetFormat CSV). No third-party CSV library appears
// anywhere in the example pack, so encoding/csv is the justified
// stdlib choice here.
func MarshalCSV(d *Datasheet, loc *localization.Map) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range d.Rows {
		record := make([]string, len(d.Columns))
		for j, col := range d.Columns {
			record[j] = cellString(row[j], col, loc)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellString(c Cell, col Column, loc *localization.Map) string {
	switch col.Type {
	case CellInt32:
		return fmt.Sprintf("%d", c.Int32)
	case CellFloat32:
		return fmt.Sprintf("%g", c.Float)
	case CellBool:
		return fmt.Sprintf("%t", c.Bool)
	case CellString:
		return loc.Resolve(c.String)
	default:
		return ""
	}
}
