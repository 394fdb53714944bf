// Package instance defines the serializable white-box AES instance: the
// per-round tables, the external encodings applied before and after the
// table network, and the static parameters readers must check before
// trusting a deserialized instance.
package instance

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/intersesh/wbaes/affine"
	"github.com/intersesh/wbaes/tables"
)

// SchemeID identifies the white-box construction an instance implements.
type SchemeID uint32

// BaekCheonHong2016 is the only scheme this module generates or evaluates.
const BaekCheonHong2016 SchemeID = 1

// CurrentVersion is the serialization format version this module writes
// and accepts.
const CurrentVersion uint32 = 1

// Params are the static parameters describing an instance's shape.
type Params struct {
	Rounds         uint32
	BlockBytes     uint32
	TableInputBits uint32
	TableOutputBts uint32
	MaBits         uint32
	Scheme         SchemeID
	Version        uint32
}

// DefaultParams is the parameter set every instance this module generates
// uses: 10 rounds, 32-byte blocks, 16-bit table inputs, 256-bit outputs.
func DefaultParams() Params {
	return Params{
		Rounds:         10,
		BlockBytes:     32,
		TableInputBits: 16,
		TableOutputBts: 256,
		MaBits:         256,
		Scheme:         BaekCheonHong2016,
		Version:        CurrentVersion,
	}
}

// ExternalEncodings are the affine maps applied before and after the round
// table network. Output is nil when the output encoding has been folded
// into the final round instead of kept separate.
type ExternalEncodings struct {
	Input  affine.A256
	Output *affine.A256
}

// Instance is a complete, serializable white-box AES-128 instance: ten
// rounds of tables operating on a 32-byte state (two concatenated AES
// blocks), plus the encodings and parameters needed to evaluate it
// correctly.
type Instance struct {
	Rounds    [10]*tables.RoundTables
	Encodings ExternalEncodings
	Params    Params
}

// ErrVersionMismatch is returned when a deserialized instance's version
// does not match CurrentVersion.
var ErrVersionMismatch = errors.New("instance: version mismatch")

// ErrSchemeMismatch is returned when a deserialized instance's scheme is
// not one this module evaluates.
var ErrSchemeMismatch = errors.New("instance: scheme mismatch")

// ErrShapeMismatch is returned when a deserialized instance's rounds or
// block size do not match what this module expects.
var ErrShapeMismatch = errors.New("instance: shape mismatch")

// Marshal encodes the instance as CBOR.
func (inst *Instance) Marshal() ([]byte, error) {
	return cbor.Marshal(inst)
}

// Unmarshal decodes a CBOR-encoded instance and validates its parameters
// before returning it. A version, scheme, or shape mismatch is returned as
// a plain error rather than a panic, per this package's compatibility
// contract.
func Unmarshal(data []byte) (*Instance, error) {
	var inst Instance
	if err := cbor.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("instance: decode: %w", err)
	}

	if inst.Params.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, inst.Params.Version, CurrentVersion)
	}
	if inst.Params.Scheme != BaekCheonHong2016 {
		return nil, fmt.Errorf("%w: got %d", ErrSchemeMismatch, inst.Params.Scheme)
	}
	if inst.Params.Rounds != 10 || inst.Params.BlockBytes != 32 {
		return nil, fmt.Errorf("%w: rounds=%d block_bytes=%d", ErrShapeMismatch, inst.Params.Rounds, inst.Params.BlockBytes)
	}

	return &inst, nil
}
