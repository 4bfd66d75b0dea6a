package pak

import (
	"bytes"
	"fmt"
	"io"

	"github.com/deploymenttheory/pakdecode/internal/hashdict"
	"github.com/deploymenttheory/pakdecode/internal/localization"
	"github.com/deploymenttheory/pakdecode/internal/pak/azcs"
	"github.com/deploymenttheory/pakdecode/internal/pak/datasheet"
	"github.com/deploymenttheory/pakdecode/internal/pak/objectstream"
	"github.com/deploymenttheory/pakdecode/internal/pak/oodle"
)

// SideBand is auxiliary data produced alongside a write, currently
// only a successfully parsed Datasheet, for callers that index asset
// data (spec.md §6 "SideBand::Datasheet").
type SideBand struct {
	Datasheet *datasheet.Datasheet
}

// Decompressor owns one entry's fully-decoded buffer for the duration
// of one decode-and-render pass (spec.md §5 "Ownership"). It borrows
// LocalizationMap and HashDictionary by reference; the caller
// guarantees both outlive it.
type Decompressor struct {
	filename string
	buf      []byte
	loc      *localization.Map
	hashes   *hashdict.Dictionary
}

// NewDecompressor runs the codec layer (§4.1) eagerly so the caller
// holds the fully-decoded bytes before any rendering decision is
// made. loc and hashes may be nil.
func NewDecompressor(entry Entry, loc *localization.Map, hashes *hashdict.Dictionary, azcsDec azcs.Decoder, oodleDec oodle.Decoder) (*Decompressor, error) {
	buf, err := decodeCodec(entry, azcsDec, oodleDec)
	if err != nil {
		return nil, err
	}
	return &Decompressor{
		filename: entry.Name(),
		buf:      buf,
		loc:      loc,
		hashes:   hashes,
	}, nil
}

// ToWriter classifies the decoded buffer, renders it per formats, and
// writes the result to sink in a single pass (spec.md §4.5). A
// structural decode failure in ObjectStream or Datasheet is recovered
// locally: sink receives the raw buffer and no side-band is returned.
func (d *Decompressor) ToWriter(sink io.Writer, formats Formats) (*SideBand, error) {
	kind := Classify(d.buf, d.filename)

	switch kind {
	case ScriptBytecode:
		return nil, d.writeScriptBytecode(sink, formats.ScriptBytecode)
	case ObjectStream:
		return nil, d.writeObjectStream(sink, formats.ObjectStream)
	case Datasheet:
		return d.writeDatasheet(sink, formats.Datasheet)
	default: // Opaque, Distribution
		_, err := sink.Write(d.buf)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrIO, err)
		}
		return nil, err
	}
}

func (d *Decompressor) writeScriptBytecode(sink io.Writer, format ScriptBytecodeFormat) error {
	if format == ScriptBytecodeParsed {
		return fmt.Errorf("%w: script bytecode parsed mode", ErrUnimplemented)
	}
	body := d.buf
	if bytes.HasPrefix(body, scriptBytecodeMagic) {
		body = body[len(scriptBytecodeMagic):]
	}
	if _, err := sink.Write(body); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func (d *Decompressor) writeObjectStream(sink io.Writer, format ObjectStreamFormat) error {
	if format == ObjectStreamBytes {
		return d.writeRaw(sink)
	}

	tree, err := objectstream.Decode(d.buf, d.hashes)
	if err != nil {
		return d.writeRaw(sink)
	}

	var out []byte
	switch format {
	case ObjectStreamXML:
		out, err = objectstream.MarshalXML(tree)
	case ObjectStreamMini:
		out, err = objectstream.MarshalJSONCompact(tree)
	case ObjectStreamPretty:
		out, err = objectstream.MarshalJSONIndent(tree)
	default:
		return d.writeRaw(sink)
	}
	if err != nil {
		return d.writeRaw(sink)
	}
	if _, err := sink.Write(out); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func (d *Decompressor) writeDatasheet(sink io.Writer, format DatasheetFormat) (*SideBand, error) {
	if format == DatasheetXML {
		return nil, fmt.Errorf("%w: datasheet xml", ErrUnimplemented)
	}

	// Decode regardless of the chosen output format: the SideBand is
	// returned whenever a Datasheet was successfully parsed, even when
	// the caller asked for raw bytes back (spec.md §4.5).
	ds, err := datasheet.Decode(d.buf)
	if err != nil {
		return nil, d.writeRaw(sink)
	}

	if format == DatasheetBytes {
		if err := d.writeRaw(sink); err != nil {
			return nil, err
		}
		return &SideBand{Datasheet: ds}, nil
	}

	var out []byte
	switch format {
	case DatasheetMini:
		out, err = datasheet.MarshalJSONCompact(ds, d.loc)
	case DatasheetPretty:
		out, err = datasheet.MarshalJSONIndent(ds, d.loc)
	case DatasheetYAML:
		out, err = datasheet.MarshalYAML(ds, d.loc)
	case DatasheetCSV:
		out, err = datasheet.MarshalCSV(ds, d.loc)
	case DatasheetSQL:
		out, err = datasheet.MarshalSQL(ds, d.loc)
	default:
		return nil, d.writeRaw(sink)
	}
	if err != nil {
		return nil, d.writeRaw(sink)
	}

	if _, err := sink.Write(out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return &SideBand{Datasheet: ds}, nil
}

func (d *Decompressor) writeRaw(sink io.Writer) error {
	if _, err := sink.Write(d.buf); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
