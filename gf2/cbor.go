package gf2

import "github.com/fxamacker/cbor/v2"

// MarshalCBOR encodes m's packed rows directly, the same way the rest of
// this module serializes fixed-shape binary data.
func (m M8) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(m.rows)
}

// UnmarshalCBOR decodes m's packed rows.
func (m *M8) UnmarshalCBOR(data []byte) error {
	return cbor.Unmarshal(data, &m.rows)
}

// MarshalCBOR encodes m's packed rows directly.
func (m M256) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(m.rows)
}

// UnmarshalCBOR decodes m's packed rows.
func (m *M256) UnmarshalCBOR(data []byte) error {
	return cbor.Unmarshal(data, &m.rows)
}
