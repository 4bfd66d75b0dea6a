package pak

import "io"

// CompressionMethod mirrors the ZIP local-file-header compression
// method tag. Only the values the codec layer knows how to handle are
// named; anything else is passed through as-is to Decompressor, which
// rejects it with ErrUnsupportedCodec.
type CompressionMethod uint16

const (
	Stored        CompressionMethod = 0
	Deflated      CompressionMethod = 8
	Proprietary15 CompressionMethod = 15
)

// Entry is the contract the surrounding ZIP container reader
// satisfies for each archive member. It is an external collaborator
// per spec.md §6: this package never opens a ZIP file itself.
type Entry interface {
	// DeclaredSize is the ZIP-recorded uncompressed size, used to
	// pre-size the decode buffer.
	DeclaredSize() uint64

	// Method is the ZIP-declared compression method tag.
	Method() CompressionMethod

	// Name is the archive member's filename, used by the classifier
	// for suffix-based rules (e.g. ".distribution").
	Name() string

	// Reader yields the entry's raw (still-compressed) bytes.
	Reader() io.Reader
}
