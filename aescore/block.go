package aescore

// Block is a single 128-bit AES block.
type Block [16]byte

// XORInPlace XORs rhs into dst.
func XORInPlace(dst *Block, rhs Block) {
	for i := range dst {
		dst[i] ^= rhs[i]
	}
}
