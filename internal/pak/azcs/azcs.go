// Package azcs defines the plugin point for the engine's proprietary
// second-layer compression envelope.
//
// spec.md gives bit-exact magic bytes for ScriptBytecode, ObjectStream
// and Datasheet (§6 "Binary signatures"), but deliberately does not
// give one for AZCS — it only says the predicate lives in "the
// external AZCS module." Rather than guess a magic value, this
// package exposes the contract and a default that never matches,
// leaving real detection/decompression to an injected implementation.
package azcs

import "io"

// Decoder is the external AZCS collaborator spec.md §6 describes:
// is_azcs(&[u8;4]) -> bool and decompress(Read) -> Read.
type Decoder interface {
	// IsAZCS reports whether sig, the first four bytes of a decoded
	// buffer, match the AZCS envelope's magic.
	IsAZCS(sig [4]byte) bool

	// Decompress unwraps the AZCS envelope, returning a reader over
	// the inner stream.
	Decompress(r io.Reader) (io.Reader, error)
}

// noneDecoder never recognizes an AZCS envelope. It is the default
// used when the caller does not inject a concrete implementation,
// which keeps the codec layer correct (no false unwrap) in the
// absence of the proprietary module.
type noneDecoder struct{}

func (noneDecoder) IsAZCS([4]byte) bool { return false }

func (noneDecoder) Decompress(r io.Reader) (io.Reader, error) { return r, nil }

// None is the default Decoder: it never matches the AZCS predicate.
var None Decoder = noneDecoder{}
