// Package linear reifies the AES round's linear layer (ShiftRows composed
// with MixColumns, and ShiftRows alone for the final round) as gf2.M256
// values acting on two concatenated 16-byte AES states.
package linear

import (
	"github.com/intersesh/wbaes/aescore"
	"github.com/intersesh/wbaes/gf2"
)

func applyMcSr(block *aescore.Block) {
	aescore.ShiftRows(block)
	aescore.MixColumns(block)
}

func applySr(block *aescore.Block) {
	aescore.ShiftRows(block)
}

// McSr256 returns the block-diagonal matrix for MC∘SR applied
// independently to each of the two 16-byte halves of a 32-byte state.
func McSr256() gf2.M256 {
	return gf2.FromLinearTransform(func(state *[32]byte) {
		first, second := splitHalves(state)
		applyMcSr(first)
		applyMcSr(second)
		joinHalves(state, first, second)
	})
}

// Sr256 returns the block-diagonal matrix for ShiftRows alone applied
// independently to each 16-byte half of a 32-byte state. It is used for
// the final round, which omits MixColumns.
func Sr256() gf2.M256 {
	return gf2.FromLinearTransform(func(state *[32]byte) {
		first, second := splitHalves(state)
		applySr(first)
		applySr(second)
		joinHalves(state, first, second)
	})
}

func splitHalves(state *[32]byte) (*aescore.Block, *aescore.Block) {
	var first, second aescore.Block
	copy(first[:], state[:16])
	copy(second[:], state[16:])
	return &first, &second
}

func joinHalves(state *[32]byte, first, second *aescore.Block) {
	copy(state[:16], first[:])
	copy(state[16:], second[:])
}
