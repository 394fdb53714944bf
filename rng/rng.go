// Package rng provides the deterministic, seedable random source the
// generator draws all of its randomness from. A fixed seed produces the
// same stream of bytes on every run, which is what lets instance
// generation be reproduced exactly from (key, seed, config).
package rng

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// Source is a deterministic byte stream seeded from a 32-byte key. It is
// the concrete type gf2.RandSource and tables.RandSource are satisfied by
// structurally; this package never imports either of them.
type Source struct {
	cipher *chacha20.Cipher
}

// NewSource seeds a Source from a 32-byte key, using a fixed nonce since
// each Source is used for exactly one generation run.
func NewSource(seed [32]byte) *Source {
	cipher, err := chacha20.NewUnauthenticatedCipher(seed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// NewUnauthenticatedCipher only errors on malformed key/nonce
		// lengths, both of which are fixed-size arrays here.
		panic(err)
	}
	return &Source{cipher: cipher}
}

// Read fills p with keystream bytes, satisfying io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}

// Uint32 draws the next 4 bytes of keystream as a little-endian uint32.
func (s *Source) Uint32() uint32 {
	var buf [4]byte
	_, _ = s.Read(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}
