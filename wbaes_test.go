package wbaes

import (
	"errors"
	"sync"
	"testing"

	"github.com/intersesh/wbaes/aescore"
	"github.com/intersesh/wbaes/generator"
	"github.com/stretchr/testify/require"
)

type fakeSource struct{ state uint64 }

func newFakeSource(seed uint64) *fakeSource {
	return &fakeSource{state: seed}
}

func (f *fakeSource) next() uint64 {
	f.state ^= f.state << 13
	f.state ^= f.state >> 7
	f.state ^= f.state << 17
	return f.state
}

func (f *fakeSource) Uint32() uint32 { return uint32(f.next()) }

func (f *fakeSource) Read(p []byte) (int, error) {
	for i := range p {
		if i%8 == 0 {
			v := f.next()
			for j := 0; j < 8 && i+j < len(p); j++ {
				p[i+j] = byte(v >> uint(8*j))
			}
		}
	}
	return len(p), nil
}

func TestEncryptBlockMatchesNISTVectorOnBothHalves(t *testing.T) {
	key := aescore.Aes128Key{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f}
	inst, err := generator.New(newFakeSource(42)).Generate(key)
	require.NoError(t, err)

	cipher := NewCipher(inst)
	require.True(t, cipher.DecryptsToPlainAES())

	plain := aescore.Block{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	expected := aescore.Block{0x69, 0xc4, 0xe0, 0xd8, 0x6a, 0x7b, 0x04, 0x30, 0xd8, 0xcd, 0xb7, 0x80, 0x70, 0xb4, 0xc5, 0x5a}

	var input [32]byte
	copy(input[:16], plain[:])
	copy(input[16:], plain[:])

	out, err := cipher.EncryptBlock(input[:])
	require.NoError(t, err)
	require.Equal(t, expected[:], out[:16])
	require.Equal(t, expected[:], out[16:])
}

func TestEncryptBlockRejectsWrongLength(t *testing.T) {
	key := aescore.Aes128Key{}
	inst, err := generator.New(newFakeSource(1)).Generate(key)
	require.NoError(t, err)

	cipher := NewCipher(inst)
	_, err = cipher.EncryptBlock(make([]byte, 16))
	require.True(t, errors.Is(err, ErrInputLength))
}

func TestEncryptBlockIsSafeForConcurrentEvaluation(t *testing.T) {
	var key aescore.Aes128Key
	copy(key[:], []byte("0123456789abcdef"))
	inst, err := generator.New(newFakeSource(9)).Generate(key)
	require.NoError(t, err)
	cipher := NewCipher(inst)

	var input [32]byte
	for i := range input {
		input[i] = byte(i)
	}

	want, err := cipher.EncryptBlock(input[:])
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][32]byte, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			out, err := cipher.EncryptBlock(input[:])
			require.NoError(t, err)
			results[idx] = out
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}

func TestExternalOutputEncodingIsFoldedIntoTables(t *testing.T) {
	var key aescore.Aes128Key
	copy(key[:], []byte("0123456789abcdef"))
	inst, err := generator.WithConfig(newFakeSource(5), generator.Config{ExternalEncodings: true}).Generate(key)
	require.NoError(t, err)

	cipher := NewCipher(inst)
	require.True(t, cipher.DecryptsToPlainAES(), "output encoding is folded into the final round by this generator")
}
