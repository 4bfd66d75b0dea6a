package datasheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v8"
	_ "github.com/doug-martin/goqu/v8/dialect/postgres"

	"github.com/deploymenttheory/pakdecode/internal/localization"
)

// MarshalSQL renders d as a standalone CREATE TABLE followed by one
// literal-valued INSERT statement (DatasheetFormat SQL). goqu has no
// DDL support, so CREATE TABLE is hand-built; the INSERT is built with
// goqu's postgres dialect, left in its default (non-prepared) mode so
// ToSQL returns complete statement text with values inlined rather
// than "$1"-style placeholders plus a separate args slice.
func MarshalSQL(d *Datasheet, loc *localization.Map) ([]byte, error) {
	tableName := fmt.Sprintf("%s_%s", d.Category, d.Name)
	table := sqlIdent(tableName)

	var buf bytes.Buffer
	writeCreateTable(&buf, table, d.Columns)
	buf.WriteByte('\n')

	if len(d.Rows) == 0 {
		return buf.Bytes(), nil
	}

	cols := make([]interface{}, len(d.Columns))
	colNames := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		cols[i] = col.Name
		colNames[i] = col.Name
	}

	ds := goqu.Dialect("postgres").Insert(goqu.T(tableName)).Cols(cols...)
	rows := make([]interface{}, len(d.Rows))
	for i, row := range d.Rows {
		vals := make(goqu.Vals, len(row))
		for j, col := range d.Columns {
			vals[j] = sqlCellValue(row[j], col, loc)
		}
		rows[i] = vals
	}
	ds = ds.Vals(toValsSlice(rows)...)

	sql, _, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("datasheet: render sql: %w", err)
	}
	buf.WriteString(sql)
	buf.WriteString(";\n")

	return buf.Bytes(), nil
}

func toValsSlice(rows []interface{}) []goqu.Vals {
	out := make([]goqu.Vals, len(rows))
	for i, r := range rows {
		out[i] = r.(goqu.Vals)
	}
	return out
}

func writeCreateTable(buf *bytes.Buffer, table string, columns []Column) {
	fmt.Fprintf(buf, "CREATE TABLE %s (\n", table)
	for i, col := range columns {
		sep := ","
		if i == len(columns)-1 {
			sep = ""
		}
		fmt.Fprintf(buf, "\t%s %s%s\n", sqlIdent(col.Name), sqlType(col.Type), sep)
	}
	buf.WriteString(");\n")
}

// sqlCellValue is cellValue with one SQL-specific adjustment: a
// CellBool column renders as INTEGER, so its value must be the
// integer 0/1, not a Go bool (which the postgres dialect would
// otherwise render as TRUE/FALSE).
func sqlCellValue(c Cell, col Column, loc *localization.Map) interface{} {
	if col.Type == CellBool {
		if c.Bool {
			return 1
		}
		return 0
	}
	return cellValue(c, col, loc)
}

func sqlType(ct CellType) string {
	switch ct {
	case CellInt32:
		return "INTEGER"
	case CellFloat32:
		return "REAL"
	case CellBool:
		return "INTEGER"
	case CellString:
		return "TEXT"
	default:
		return "TEXT"
	}
}

// sqlIdent quotes a SQL identifier, doubling any embedded quote. It
// deliberately avoids fmt's %q verb, which applies Go string-escaping
// rather than SQL identifier-quoting rules.
func sqlIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
