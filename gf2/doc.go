// Package gf2 implements dense binary matrices over GF(2) in two fixed
// dimensions: 8×8 (M8) and 256×256 (M256). These are the linear-algebra
// substrate the white-box AES construction is built on — every affine
// encoding, every round's linear layer, and the banded "unsplit" encodings
// are M8 or M256 values under the hood.
//
// Rows are stored bit-packed rather than as [8]bool/[256]bool: row i, bit j
// is the matrix entry at (i, j). M8 packs each row into a single byte; M256
// packs each row into four little-endian uint64 words.
package gf2
