package datasheet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// magicMarker is the leading uint32 this decoder expects; it is the
// little-endian reading of spec.md's literal Datasheet magic bytes
// ("11 00 00 00").
const magicMarker uint32 = 0x11

// maxEntries bounds string-pool, column and row counts against a
// corrupt or adversarial stream.
const maxEntries = 1 << 24

// Decode parses a binary datasheet starting at the head of buf
// (spec.md §4.4).
func Decode(buf []byte) (*Datasheet, error) {
	r := bytes.NewReader(buf)

	var marker uint32
	if err := binary.Read(r, binary.LittleEndian, &marker); err != nil {
		return nil, fmt.Errorf("datasheet: magic: %w", err)
	}
	if marker != magicMarker {
		return nil, fmt.Errorf("datasheet: unexpected magic %#x", marker)
	}

	category, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("datasheet: category: %w", err)
	}
	name, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("datasheet: name: %w", err)
	}

	pool, err := readPool(r)
	if err != nil {
		return nil, err
	}

	columns, err := readColumns(r, pool)
	if err != nil {
		return nil, err
	}

	rows, err := readRows(r, columns, pool)
	if err != nil {
		return nil, err
	}

	return &Datasheet{
		Category: category,
		Name:     name,
		Columns:  columns,
		Rows:     rows,
	}, nil
}

func readPool(r *bytes.Reader) ([]string, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, fmt.Errorf("datasheet: string pool count: %w", err)
	}
	pool := make([]string, count)
	for i := range pool {
		s, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("datasheet: string pool entry %d: %w", i, err)
		}
		pool[i] = s
	}
	return pool, nil
}

func readColumns(r *bytes.Reader, pool []string) ([]Column, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, fmt.Errorf("datasheet: column count: %w", err)
	}
	columns := make([]Column, count)
	for i := range columns {
		var nameIdx uint32
		if err := binary.Read(r, binary.LittleEndian, &nameIdx); err != nil {
			return nil, fmt.Errorf("datasheet: column %d name index: %w", i, err)
		}
		var ctype uint8
		if err := binary.Read(r, binary.LittleEndian, &ctype); err != nil {
			return nil, fmt.Errorf("datasheet: column %d type: %w", i, err)
		}
		name, err := poolLookup(pool, nameIdx)
		if err != nil {
			return nil, fmt.Errorf("datasheet: column %d: %w", i, err)
		}
		columns[i] = Column{Name: name, Type: CellType(ctype)}
	}
	return columns, nil
}

func readRows(r *bytes.Reader, columns []Column, pool []string) ([][]Cell, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, fmt.Errorf("datasheet: row count: %w", err)
	}
	rows := make([][]Cell, count)
	for i := range rows {
		row := make([]Cell, len(columns))
		for j, col := range columns {
			cell, err := readCell(r, col.Type, pool)
			if err != nil {
				return nil, fmt.Errorf("datasheet: row %d col %d: %w", i, j, err)
			}
			row[j] = cell
		}
		rows[i] = row
	}
	return rows, nil
}

func readCell(r *bytes.Reader, ct CellType, pool []string) (Cell, error) {
	switch ct {
	case CellInt32:
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return Cell{}, err
		}
		return Cell{Int32: v}, nil
	case CellFloat32:
		var v float32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return Cell{}, err
		}
		return Cell{Float: v}, nil
	case CellBool:
		b, err := r.ReadByte()
		if err != nil {
			return Cell{}, err
		}
		return Cell{Bool: b != 0}, nil
	case CellString:
		var idx uint32
		if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
			return Cell{}, err
		}
		s, err := poolLookup(pool, idx)
		if err != nil {
			return Cell{}, err
		}
		return Cell{String: s}, nil
	default:
		return Cell{}, fmt.Errorf("unknown cell type %d", ct)
	}
}

func readCount(r *bytes.Reader) (uint32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, err
	}
	if n > maxEntries {
		return 0, fmt.Errorf("count %d exceeds bound", n)
	}
	return n, nil
}

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > maxEntries {
		return "", fmt.Errorf("string length %d exceeds bound", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func poolLookup(pool []string, idx uint32) (string, error) {
	if int(idx) >= len(pool) {
		return "", fmt.Errorf("string pool index %d out of range (pool size %d)", idx, len(pool))
	}
	return pool[idx], nil
}
