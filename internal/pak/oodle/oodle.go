// Package oodle defines the plugin point for the vendor block
// decompressor spec.md §6 names as an external collaborator: a
// proprietary, closed-source codec with no redistributable Go
// binding. The codec layer invokes whatever Decoder is configured for
// ZIP method 15 and reports failures as pak.ErrCodec.
package oodle

import "errors"

// ErrUnavailable is returned by Unavailable, the default Decoder.
var ErrUnavailable = errors.New("oodle: decoder not configured")

// DecodeThreadPhase mirrors the phase argument the native decompressor
// takes; ALL matches spec.md §6's "phase:ALL".
type DecodeThreadPhase int

const PhaseAll DecodeThreadPhase = 0

// Decoder is the external Oodle collaborator: decompress(src, dst,
// phase) -> Result<usize>.
type Decoder interface {
	Decompress(src []byte, dst []byte, phase DecodeThreadPhase) (n int, err error)
}

type unavailableDecoder struct{}

func (unavailableDecoder) Decompress([]byte, []byte, DecodeThreadPhase) (int, error) {
	return 0, ErrUnavailable
}

// Unavailable is the default Decoder, used until a real binding is
// injected by the caller.
var Unavailable Decoder = unavailableDecoder{}
