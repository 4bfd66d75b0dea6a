package objectstream

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/deploymenttheory/pakdecode/internal/hashdict"
)

// maxChildren and maxStringLen bound allocations against a corrupt or
// adversarial stream; exceeding either is treated as a parse failure
// rather than an attempted huge allocation.
const (
	maxChildren  = 1 << 20
	maxStringLen = 1 << 26
)

// Decode parses a binary object-graph starting at the head of buf
// (spec.md §4.3). hashes may be nil, in which case every type/member
// hash renders as its hexadecimal fallback.
func Decode(buf []byte, hashes *hashdict.Dictionary) (*Tree, error) {
	r := bytes.NewReader(buf)
	root, err := decodeNode(r, hashes, true)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}

func decodeNode(r *bytes.Reader, hashes *hashdict.Dictionary, isRoot bool) (*Node, error) {
	var typeID uint32
	if err := binary.Read(r, binary.LittleEndian, &typeID); err != nil {
		return nil, fmt.Errorf("object stream: type-id hash: %w", err)
	}

	node := &Node{
		TypeID:   typeID,
		TypeName: hashes.Resolve(typeID),
		IsRoot:   isRoot,
	}

	if !isRoot {
		var nameID uint32
		if err := binary.Read(r, binary.LittleEndian, &nameID); err != nil {
			return nil, fmt.Errorf("object stream: member-name hash: %w", err)
		}
		node.NameID = nameID
		node.Name = hashes.Resolve(nameID)
	}

	var valueType uint8
	if err := binary.Read(r, binary.LittleEndian, &valueType); err != nil {
		return nil, fmt.Errorf("object stream: value type: %w", err)
	}
	node.ValueType = ValueType(valueType)

	value, err := decodeValue(r, node.ValueType)
	if err != nil {
		return nil, err
	}
	node.Value = value

	var childCount uint32
	if err := binary.Read(r, binary.LittleEndian, &childCount); err != nil {
		return nil, fmt.Errorf("object stream: child count: %w", err)
	}
	if childCount > maxChildren {
		return nil, fmt.Errorf("object stream: child count %d exceeds bound", childCount)
	}

	node.Children = make([]*Node, 0, childCount)
	for i := uint32(0); i < childCount; i++ {
		child, err := decodeNode(r, hashes, false)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

func decodeValue(r *bytes.Reader, vt ValueType) (interface{}, error) {
	switch vt {
	case ValueNull, ValueObject:
		return nil, nil
	case ValueBool:
		b, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("object stream: bool value: %w", err)
		}
		return b != 0, nil
	case ValueInt32:
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("object stream: int32 value: %w", err)
		}
		return v, nil
	case ValueInt64:
		var v int64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("object stream: int64 value: %w", err)
		}
		return v, nil
	case ValueFloat32:
		var v float32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("object stream: float32 value: %w", err)
		}
		return v, nil
	case ValueFloat64:
		var v float64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("object stream: float64 value: %w", err)
		}
		return v, nil
	case ValueString:
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("object stream: string length: %w", err)
		}
		if n > maxStringLen {
			return nil, fmt.Errorf("object stream: string length %d exceeds bound", n)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("object stream: string value: %w", err)
		}
		return string(buf), nil
	default:
		return nil, fmt.Errorf("object stream: unknown value type %d", vt)
	}
}
