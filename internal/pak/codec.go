package pak

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/deploymenttheory/pakdecode/internal/pak/azcs"
	"github.com/deploymenttheory/pakdecode/internal/pak/oodle"
)

// zlibBestCompressionHeader is the two-byte zlib stream header ZIP
// deflate entries sometimes carry (spec.md §4.1, §6).
var zlibBestCompressionHeader = [2]byte{0x78, 0xDA}

// decodeCodec runs spec.md §4.1 to completion: ZIP-declared
// decompression followed by a conditional AZCS unwrap. It owns the
// output buffer, pre-sized to the entry's declared size.
func decodeCodec(entry Entry, azcsDecoder azcs.Decoder, oodleDecoder oodle.Decoder) ([]byte, error) {
	size := entry.DeclaredSize()
	if size == 0 {
		return []byte{}, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))

	switch entry.Method() {
	case Stored:
		if _, err := io.Copy(buf, entry.Reader()); err != nil {
			return nil, fmt.Errorf("%w: copying stored entry: %v", ErrIO, err)
		}
	case Deflated:
		if err := decodeDeflate(entry.Reader(), buf); err != nil {
			return nil, err
		}
	case Proprietary15:
		if err := decodeOodle(entry.Reader(), buf, size, oodleDecoder); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: method %d", ErrUnsupportedCodec, entry.Method())
	}

	return unwrapAZCS(buf.Bytes(), azcsDecoder)
}

// decodeDeflate peeks the first two bytes of r to distinguish a
// zlib-wrapped stream ("78 DA") from raw DEFLATE, per spec.md §4.1.
// The peeked bytes are chained back in front of r rather than
// discarded, since r may not support seeking.
func decodeDeflate(r io.Reader, dst io.Writer) error {
	var peeked [2]byte
	n, err := io.ReadFull(r, peeked[:])
	if err != nil {
		if n == 0 && err == io.EOF {
			return nil
		}
		return fmt.Errorf("%w: reading deflate header: %v", ErrIO, err)
	}

	chained := io.MultiReader(bytes.NewReader(peeked[:]), r)

	if peeked == zlibBestCompressionHeader {
		zr, err := zlib.NewReader(chained)
		if err != nil {
			return fmt.Errorf("%w: zlib: %v", ErrCodec, err)
		}
		defer zr.Close()
		if _, err := io.Copy(dst, zr); err != nil {
			return fmt.Errorf("%w: zlib: %v", ErrCodec, err)
		}
		return nil
	}

	fr := flate.NewReader(chained)
	defer fr.Close()
	if _, err := io.Copy(dst, fr); err != nil {
		return fmt.Errorf("%w: deflate: %v", ErrCodec, err)
	}
	return nil
}

// decodeOodle reads the full compressed stream, then invokes the
// external Oodle decompressor with the declared size as output
// capacity (spec.md §4.1).
func decodeOodle(r io.Reader, dst *bytes.Buffer, declaredSize uint64, dec oodle.Decoder) error {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: reading oodle stream: %v", ErrIO, err)
	}

	out := make([]byte, declaredSize)
	n, err := dec.Decompress(compressed, out, oodle.PhaseAll)
	if err != nil {
		return fmt.Errorf("%w: oodle: %v", ErrCodec, err)
	}
	dst.Write(out[:n])
	return nil
}

// unwrapAZCS inspects the first four bytes of buf; if they match the
// AZCS magic, the buffer is replaced with the fully unwrapped inner
// stream (spec.md §4.1 step 4, invariant 1).
func unwrapAZCS(buf []byte, dec azcs.Decoder) ([]byte, error) {
	if len(buf) < 4 {
		return buf, nil
	}

	var sig [4]byte
	copy(sig[:], buf[:4])
	if !dec.IsAZCS(sig) {
		return buf, nil
	}

	r, err := dec.Decompress(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: azcs: %v", ErrCodec, err)
	}

	unwrapped, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: azcs: %v", ErrCodec, err)
	}
	return unwrapped, nil
}
