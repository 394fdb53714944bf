package generator

import (
	"testing"

	"github.com/intersesh/wbaes/aescore"
	"github.com/stretchr/testify/require"
)

type fakeSource struct{ state uint64 }

func newFakeSource(seed uint64) *fakeSource {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
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

func TestGenerateMatchesAESOnBothBlocks(t *testing.T) {
	var key aescore.Aes128Key
	copy(key[:], []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f})

	src := newFakeSource(1)
	gen := New(src)
	inst, err := gen.Generate(key)
	require.NoError(t, err)

	roundKeys := aescore.ExpandKey(key)

	var plain1, plain2 aescore.Block
	copy(plain1[:], []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff})
	copy(plain2[:], []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x10, 0x32, 0x54, 0x76, 0x98, 0xba, 0xdc, 0xfe})

	var input [32]byte
	copy(input[:16], plain1[:])
	copy(input[16:], plain2[:])

	encoded := inst.Encodings.Input.Apply(input)

	state := encoded
	for r := 0; r < 10; r++ {
		var next [32]byte
		for i := 0; i < 32; i++ {
			x := state[i]
			y := state[(i+1)%32]
			entry := inst.Rounds[r].Tables[i].Get(x, y)
			for k := range next {
				next[k] ^= entry[k]
			}
		}
		state = next
	}

	expected1 := aescore.EncryptBlock(plain1, roundKeys)
	expected2 := aescore.EncryptBlock(plain2, roundKeys)

	require.Equal(t, expected1[:], state[:16])
	require.Equal(t, expected2[:], state[16:])
}

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	var key aescore.Aes128Key
	copy(key[:], []byte("0123456789abcdef"))

	instA, err := New(newFakeSource(7)).Generate(key)
	require.NoError(t, err)
	instB, err := New(newFakeSource(7)).Generate(key)
	require.NoError(t, err)

	require.Equal(t, instA.Encodings.Input, instB.Encodings.Input)
	for r := 0; r < 10; r++ {
		for i := 0; i < 32; i++ {
			require.Equal(t, instA.Rounds[r].Tables[i].Data, instB.Rounds[r].Tables[i].Data, "round %d table %d", r, i)
		}
	}
}

func TestGenerateWithExternalEncodingsFoldsOutput(t *testing.T) {
	var key aescore.Aes128Key
	copy(key[:], []byte("0123456789abcdef"))

	inst, err := WithConfig(newFakeSource(3), Config{ExternalEncodings: true}).Generate(key)
	require.NoError(t, err)
	require.Nil(t, inst.Encodings.Output, "output encoding is folded into the final round, never kept separately")
}

func TestDuplicateRoundKeyHandlesIdenticalHalves(t *testing.T) {
	var key aescore.Aes128Key
	copy(key[:], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})

	src := newFakeSource(5)
	inst, err := New(src).Generate(key)
	require.NoError(t, err)
	require.NotNil(t, inst)
}
