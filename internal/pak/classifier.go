package pak

import (
	"bytes"
	"strings"
)

// PayloadKind tags the decompressed payload by its decoded contents
// and filename (spec.md §4.2).
type PayloadKind int

const (
	Opaque PayloadKind = iota
	ScriptBytecode
	ObjectStream
	Datasheet
	Distribution
)

func (k PayloadKind) String() string {
	switch k {
	case ScriptBytecode:
		return "script_bytecode"
	case ObjectStream:
		return "object_stream"
	case Datasheet:
		return "datasheet"
	case Distribution:
		return "distribution"
	default:
		return "opaque"
	}
}

var (
	scriptBytecodeMagic = []byte{0x04, 0x00, 0x1B, 0x4C, 0x75}
	objectStreamMagic   = []byte{0x00, 0x00, 0x00, 0x00, 0x03}
	datasheetMagic      = []byte{0x11, 0x00, 0x00, 0x00}
)

// Classify is a pure, total function from (decoded buffer prefix,
// filename) to PayloadKind. Rules are evaluated top-to-bottom; the
// first match wins (spec.md §4.2, invariant 4).
func Classify(buf []byte, filename string) PayloadKind {
	switch {
	case bytes.HasPrefix(buf, scriptBytecodeMagic):
		return ScriptBytecode
	case bytes.HasPrefix(buf, objectStreamMagic):
		return ObjectStream
	case bytes.HasPrefix(buf, datasheetMagic):
		return Datasheet
	case strings.HasSuffix(filename, ".distribution"):
		return Distribution
	default:
		return Opaque
	}
}
