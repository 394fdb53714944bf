package aescore

import "github.com/intersesh/wbaes/internal/statemat"

// mixColumnPolynomials is the circulant matrix MixColumns multiplies each
// state column by, per FIPS-197 Section 5.1.3.
var mixColumnPolynomials = statemat.Matrix[byte]{
	{0x02, 0x03, 0x01, 0x01},
	{0x01, 0x02, 0x03, 0x01},
	{0x01, 0x01, 0x02, 0x03},
	{0x03, 0x01, 0x01, 0x02},
}

// mixColumnPolynomialsInverse is the inverse circulant matrix used by
// InvMixColumns.
var mixColumnPolynomialsInverse = statemat.Matrix[byte]{
	{0x0e, 0x0b, 0x0d, 0x09},
	{0x09, 0x0e, 0x0b, 0x0d},
	{0x0d, 0x09, 0x0e, 0x0b},
	{0x0b, 0x0d, 0x09, 0x0e},
}

// parse lays a block out as a column-major 4×4 state matrix: state[r][c]
// holds block[r+4c].
func parse(block Block) statemat.Matrix[byte] {
	out := statemat.EmptyMatrix[byte](4, 4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = block[r+4*c]
		}
	}
	return out
}

// unparse is the inverse of parse.
func unparse(state statemat.Matrix[byte]) Block {
	var out Block
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r+4*c] = state[r][c]
		}
	}
	return out
}

// SubBytes applies the forward S-box to every byte of block.
func SubBytes(block *Block) {
	for i, b := range block {
		block[i] = sbox[b]
	}
}

// InvSubBytes applies the inverse S-box to every byte of block.
func InvSubBytes(block *Block) {
	for i, b := range block {
		block[i] = sboxInverse[b]
	}
}

// ShiftRows cyclically shifts state row i left by i positions.
func ShiftRows(block *Block) {
	state := parse(*block)
	out := statemat.EmptyMatrix[byte](4, 4)
	for i := 0; i < 4; i++ {
		out[i] = append(append(statemat.Vector[byte]{}, state[i][i:]...), state[i][:i]...)
	}
	*block = unparse(out)
}

// InvShiftRows cyclically shifts state row i right by i positions.
func InvShiftRows(block *Block) {
	state := parse(*block)
	out := statemat.EmptyMatrix[byte](4, 4)
	for i := 0; i < 4; i++ {
		pivot := (4 - i) % 4
		out[i] = append(append(statemat.Vector[byte]{}, state[i][pivot:]...), state[i][:pivot]...)
	}
	*block = unparse(out)
}

func mixColumnsWith(block *Block, polynomials statemat.Matrix[byte]) {
	state := parse(*block)
	out := statemat.EmptyMatrix[byte](4, 4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row][col] = DotProduct(statemat.RowVector(polynomials, row), statemat.ColumnVector(state, col))
		}
	}
	*block = unparse(out)
}

// MixColumns mixes each column of block through the AES MixColumns matrix.
func MixColumns(block *Block) {
	mixColumnsWith(block, mixColumnPolynomials)
}

// InvMixColumns applies the inverse MixColumns transformation.
func InvMixColumns(block *Block) {
	mixColumnsWith(block, mixColumnPolynomialsInverse)
}

// AddRoundKey XORs key into block.
func AddRoundKey(block *Block, key Block) {
	XORInPlace(block, key)
}
