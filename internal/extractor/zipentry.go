package extractor

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/deploymenttheory/pakdecode/internal/pak"
)

// zipEntry adapts one *zip.File into pak.Entry. OpenRaw is used
// instead of Open so the codec layer, not archive/zip, owns
// decompression (spec.md §4.1) — archive/zip's own Deflate reader
// would have already consumed the bytes the codec layer needs to
// sniff and decode itself, and it has no decompressor at all for the
// vendor method-15 tag.
type zipEntry struct {
	file *zip.File
	r    io.Reader
}

func newZipEntry(f *zip.File) (pak.Entry, error) {
	r, err := f.OpenRaw()
	if err != nil {
		return nil, fmt.Errorf("%w: opening raw entry %s: %v", pak.ErrIO, f.Name, err)
	}
	return &zipEntry{file: f, r: r}, nil
}

func (e *zipEntry) DeclaredSize() uint64 {
	return e.file.UncompressedSize64
}

func (e *zipEntry) Method() pak.CompressionMethod {
	return pak.CompressionMethod(e.file.Method)
}

func (e *zipEntry) Name() string {
	return e.file.Name
}

func (e *zipEntry) Reader() io.Reader {
	return e.r
}
