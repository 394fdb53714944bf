// Package wbaes implements the runtime evaluator for a white-box AES-128
// instance: it walks the precomputed round tables a Generator produced,
// turning a 32-byte input (two concatenated AES-128 plaintext blocks) into
// the corresponding ciphertext pair without the key ever appearing
// explicitly during evaluation.
package wbaes

import (
	"errors"
	"fmt"

	"github.com/intersesh/wbaes/instance"
)

// ErrInputLength is returned by EncryptBlock when the input is not exactly
// 32 bytes.
var ErrInputLength = errors.New("wbaes: input must be exactly 32 bytes")

// ErrOutputEncodingPresent is returned by operations that require a plain
// AES ciphertext (decrypt, check) when the instance carries a separate
// output encoding that has not been undone.
var ErrOutputEncodingPresent = errors.New("wbaes: instance has an output encoding; cannot recover plain AES output")

// Cipher evaluates a white-box instance. Instances are immutable once
// built, so a single Cipher may be shared and evaluated concurrently from
// multiple goroutines.
type Cipher struct {
	inst *instance.Instance
}

// NewCipher wraps an instance for evaluation.
func NewCipher(inst *instance.Instance) *Cipher {
	return &Cipher{inst: inst}
}

// EncryptBlock applies the input encoding, walks the ten rounds of table
// lookups combined by XOR, and applies the output encoding if present.
// When both external encodings are absent, the result is
// AES(K, input[0:16]) ‖ AES(K, input[16:32]).
func (c *Cipher) EncryptBlock(input []byte) ([32]byte, error) {
	var state [32]byte
	if len(input) != 32 {
		return state, fmt.Errorf("%w: got %d bytes", ErrInputLength, len(input))
	}
	copy(state[:], input)

	state = c.inst.Encodings.Input.Apply(state)

	for r := 0; r < 10; r++ {
		var next [32]byte
		round := c.inst.Rounds[r]
		for i := 0; i < 32; i++ {
			x := state[i]
			y := state[(i+1)%32]
			entry := round.Tables[i].Get(x, y)
			for k := range next {
				next[k] ^= entry[k]
			}
		}
		state = next
	}

	if c.inst.Encodings.Output != nil {
		state = c.inst.Encodings.Output.Apply(state)
	}

	return state, nil
}

// DecryptsToPlainAES reports whether this instance carries no separate
// output encoding (Encodings.Output is nil), i.e. none needs undoing by the
// caller. An output encoding folded into the final round's tables is not
// recorded in the instance, so such an instance also reports true even
// though its output is not the plain AES ciphertext pair.
func (c *Cipher) DecryptsToPlainAES() bool {
	return c.inst.Encodings.Output == nil
}
