package gf2

// M256 is a 256×256 matrix over GF(2). Row i is packed into four
// little-endian uint64 words; bit j%64 of word j/64 is the matrix entry at
// (i, j). It views naturally as a 32×32 grid of 8×8 M8 blocks via Block/
// SetBlock.
type M256 struct {
	rows [256][4]uint64
}

// ZeroM256 returns the zero matrix.
func ZeroM256() M256 {
	return M256{}
}

// IdentityM256 returns the 256×256 identity matrix.
func IdentityM256() M256 {
	var m M256
	for i := 0; i < 256; i++ {
		segment, offset := i/64, i%64
		m.rows[i][segment] |= 1 << uint(offset)
	}
	return m
}

func (m *M256) setBit(row, col int, value bool) {
	segment, offset := col/64, col%64
	mask := uint64(1) << uint(offset)
	if value {
		m.rows[row][segment] |= mask
	} else {
		m.rows[row][segment] &^= mask
	}
}

func (m M256) bit(row, col int) bool {
	segment, offset := col/64, col%64
	return (m.rows[row][segment]>>uint(offset))&1 == 1
}

func (m *M256) clearBlock(rowBlock, colBlock int) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			m.setBit(rowBlock*8+row, colBlock*8+col, false)
		}
	}
}

// SetBlock writes block as the 8×8 block at (rowBlock, colBlock).
func (m *M256) SetBlock(rowBlock, colBlock int, block M8) {
	m.clearBlock(rowBlock, colBlock)
	rows := block.Rows()
	for row := 0; row < 8; row++ {
		rowBits := rows[row]
		for bit := 0; bit < 8; bit++ {
			if (rowBits>>uint(bit))&1 == 1 {
				m.setBit(rowBlock*8+row, colBlock*8+bit, true)
			}
		}
	}
}

// Block reads the 8×8 block at (rowBlock, colBlock).
func (m M256) Block(rowBlock, colBlock int) M8 {
	var rows [8]byte
	for rowOffset := 0; rowOffset < 8; rowOffset++ {
		var rowBits byte
		for bit := 0; bit < 8; bit++ {
			if m.bit(rowBlock*8+rowOffset, colBlock*8+bit) {
				rowBits |= 1 << uint(bit)
			}
		}
		rows[rowOffset] = rowBits
	}
	var out M8
	for i := 0; i < 8; i++ {
		out.SetRow(i, rows[i])
	}
	return out
}

// RandomSparseUnsplit samples a sparse-banded M256: non-zero 8×8 blocks
// only on the diagonal, the super-diagonal, and the (31, 0) wrap block.
// Diagonal blocks are invertible; off-diagonal blocks are arbitrary. The
// full matrix is rejection-sampled until it is globally invertible.
func RandomSparseUnsplit(src RandSource) (M256, error) {
	for attempt := 0; attempt < retryBudget; attempt++ {
		var mat M256
		ok := true
		for block := 0; block < 32; block++ {
			diag, err := RandomInvertibleM8(src)
			if err != nil {
				ok = false
				break
			}
			mat.SetBlock(block, block, diag)
		}
		if !ok {
			continue
		}
		for block := 0; block < 31; block++ {
			super := randomM8(src)
			mat.SetBlock(block, block+1, super)
		}
		wrap := randomM8(src)
		mat.SetBlock(31, 0, wrap)

		if mat.IsInvertible() {
			return mat, nil
		}
	}
	return M256{}, ErrRetryBudgetExhausted
}

// Mul returns m * rhs.
func (m M256) Mul(rhs M256) M256 {
	var result M256
	for rowIdx := 0; rowIdx < 256; rowIdx++ {
		var acc [4]uint64
		row := m.rows[rowIdx]
		for segIdx, segment := range row {
			bits := segment
			for bits != 0 {
				bit := trailingZeros64(bits)
				sourceRow := segIdx*64 + bit
				for seg := 0; seg < 4; seg++ {
					acc[seg] ^= rhs.rows[sourceRow][seg]
				}
				bits &= bits - 1
			}
		}
		result.rows[rowIdx] = acc
	}
	return result
}

// Invert attempts bit-sliced Gauss-Jordan elimination on [m | I]. Returns
// ErrNotInvertible if no pivot can be found for some column.
func (m M256) Invert() (M256, error) {
	left := m.rows
	right := IdentityM256().rows

	for col := 0; col < 256; col++ {
		segment, offset := col/64, col%64
		pivot := -1
		for row := col; row < 256; row++ {
			if (left[row][segment]>>uint(offset))&1 == 1 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return M256{}, ErrNotInvertible
		}
		if pivot != col {
			left[pivot], left[col] = left[col], left[pivot]
			right[pivot], right[col] = right[col], right[pivot]
		}
		for row := 0; row < 256; row++ {
			if row == col {
				continue
			}
			if (left[row][segment]>>uint(offset))&1 == 1 {
				for seg := 0; seg < 4; seg++ {
					left[row][seg] ^= left[col][seg]
					right[row][seg] ^= right[col][seg]
				}
			}
		}
	}

	return M256{rows: right}, nil
}

// IsInvertible reports whether m has an inverse over GF(2).
func (m M256) IsInvertible() bool {
	_, err := m.Invert()
	return err == nil
}

// ApplyToBytes applies m to a 256-bit vector represented as 32 bytes in
// little-endian byte-and-bit order.
func (m M256) ApplyToBytes(input [32]byte) [32]byte {
	inputSegments := bytesToSegments(input)
	var outputSegments [4]uint64

	for rowIdx := 0; rowIdx < 256; rowIdx++ {
		row := m.rows[rowIdx]
		var acc int
		for seg := 0; seg < 4; seg++ {
			acc ^= popcount64(row[seg] & inputSegments[seg])
		}
		if acc&1 == 1 {
			segment, offset := rowIdx/64, rowIdx%64
			outputSegments[segment] |= 1 << uint(offset)
		}
	}

	return segmentsToBytes(outputSegments)
}

// SubmatrixByteMap precomputes m · (byte v placed at position byteIndex,
// all other bytes zero) for every v in [0, 255].
func (m M256) SubmatrixByteMap(byteIndex int) [256][32]byte {
	var basisOutputs [8][32]byte
	for bit := 0; bit < 8; bit++ {
		var input [32]byte
		input[byteIndex] = 1 << uint(bit)
		basisOutputs[bit] = m.ApplyToBytes(input)
	}

	var out [256][32]byte
	for value := 1; value <= 255; value++ {
		var acc [32]byte
		v := byte(value)
		for bit := 0; v != 0; bit++ {
			if v&1 == 1 {
				xorBytes32(&acc, basisOutputs[bit])
			}
			v >>= 1
		}
		out[value] = acc
	}
	return out
}

// FromLinearTransform reifies a GF(2)-linear function f (operating in place
// on a 32-byte state) as an M256, by evaluating f on each of the 256 basis
// vectors and storing the result as the corresponding column.
func FromLinearTransform(f func(state *[32]byte)) M256 {
	var m M256
	for col := 0; col < 256; col++ {
		var basis [32]byte
		basis[col/8] = 1 << uint(col%8)
		f(&basis)
		for row := 0; row < 256; row++ {
			byteIdx, bitIdx := row/8, row%8
			if (basis[byteIdx]>>uint(bitIdx))&1 == 1 {
				m.setBit(row, col, true)
			}
		}
	}
	return m
}

func bytesToSegments(b [32]byte) [4]uint64 {
	var out [4]uint64
	for seg := 0; seg < 4; seg++ {
		var word uint64
		for i := 0; i < 8; i++ {
			word |= uint64(b[seg*8+i]) << uint(8*i)
		}
		out[seg] = word
	}
	return out
}

func segmentsToBytes(segs [4]uint64) [32]byte {
	var out [32]byte
	for seg := 0; seg < 4; seg++ {
		word := segs[seg]
		for i := 0; i < 8; i++ {
			out[seg*8+i] = byte(word >> uint(8*i))
		}
	}
	return out
}

func xorBytes32(dst *[32]byte, src [32]byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func popcount64(x uint64) int {
	count := 0
	for x != 0 {
		x &= x - 1
		count++
	}
	return count
}

func trailingZeros64(x uint64) int {
	n := 0
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}
