package tables

import (
	"testing"

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

func TestTableRoundtrip(t *testing.T) {
	table := NewTable16x256()
	var value [32]byte
	value[0] = 0xaa
	value[31] = 0x55
	table.Set(1, 2, value)
	require.Equal(t, value, table.Get(1, 2))
	require.Equal(t, [32]byte{}, table.Get(0, 0))
}

func TestRoundTablesInitiallyZero(t *testing.T) {
	round := NewRoundTables()
	require.Equal(t, [32]byte{}, round.Tables[0].Get(0, 0))
	require.Equal(t, [32]byte{}, round.Tables[31].Get(255, 255))
}

func TestRandomHTableFillsAllEntries(t *testing.T) {
	src := newFakeSource(99)
	h, err := RandomHTable(src)
	require.NoError(t, err)

	for x := 0; x < 256; x++ {
		require.NotEqual(t, [32]byte{}, h.Get(byte(x)), "entry %d left zero", x)
	}
}
