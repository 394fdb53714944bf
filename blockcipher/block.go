// Package blockcipher runs a white-box cipher over a byte stream by
// chunking it into fixed-size blocks. The white-box construction's native
// block is 32 bytes (two concatenated AES-128 blocks), so unlike a
// conventional 16-byte block cipher wrapper this package only offers ECB:
// the construction has no chaining semantics of its own to extend into a
// CBC or CTR mode.
package blockcipher

import "fmt"

// Block is the native block size of the white-box construction: two
// concatenated AES-128 blocks.
type Block [32]byte

// NewBlock returns a block containing the given bytes, zero-padded if
// len(bytes) < 32.
func NewBlock(bytes []byte) Block {
	if len(bytes) > 32 {
		panic("blocks cannot be larger than 32 bytes")
	}

	var block Block
	copy(block[:], bytes)
	return block
}

// String returns a hexadecimal representation of the block.
func (b Block) String() string {
	return fmt.Sprintf("%x", b[:])
}
