package pak

import "errors"

// Error taxonomy for the decode pipeline. Each sentinel is wrapped
// with context via fmt.Errorf("...: %w", Err*) at the call site, so
// callers can still errors.Is against the bare sentinel.
var (
	// ErrIO wraps a failed read from the archive entry's byte stream
	// or a failed write to the caller's sink. Never recovered.
	ErrIO = errors.New("pak: io error")

	// ErrUnsupportedCodec is returned for a ZIP compression method
	// the codec layer does not implement.
	ErrUnsupportedCodec = errors.New("pak: unsupported codec")

	// ErrCodec wraps a corrupt compressed stream or a failure from an
	// external decompressor (Oodle, AZCS).
	ErrCodec = errors.New("pak: codec error")

	// ErrParse names the class of a format decoder rejecting its input
	// as structurally invalid. The objectstream and datasheet decoders
	// return their own errors, which do not wrap ErrParse; the
	// serializer recovers from them locally by falling back to byte
	// passthrough, so no parse failure reaches the caller.
	ErrParse = errors.New("pak: parse error")

	// ErrUnimplemented marks a selected OutputFormat that has no
	// renderer (datasheet XML, script bytecode Parsed). Surfaced to the
	// caller.
	ErrUnimplemented = errors.New("pak: unimplemented")
)
