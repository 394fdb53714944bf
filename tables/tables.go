// Package tables implements the lookup-table types the white-box
// construction's round network is built from: a 16-bit-indexed table
// mapping a byte pair to a 32-byte value, a per-round collection of 32 of
// those, and the random 256-entry masking tables used to obscure them.
package tables

// entryBytes is the width of a single table entry.
const entryBytes = 32

// entries is the number of (x, y) byte-pair entries in a Table16x256.
const entries = 1 << 16

// Table16x256 maps a pair of bytes (x, y) to a 32-byte value. Entries are
// stored flat rather than as a [][]byte to keep one round's 32 tables (64
// MiB total) as a small number of contiguous allocations. Data is exported
// so the CBOR codec can see it directly; use Get/Set rather than indexing
// it by hand.
type Table16x256 struct {
	Data []byte
}

// NewTable16x256 allocates a zeroed table.
func NewTable16x256() *Table16x256 {
	return &Table16x256{Data: make([]byte, entries*entryBytes)}
}

func entryIndex(x, y byte) int {
	return (int(x) << 8) | int(y)
}

// Set writes the entry for (x, y).
func (t *Table16x256) Set(x, y byte, value [32]byte) {
	start := entryIndex(x, y) * entryBytes
	copy(t.Data[start:start+entryBytes], value[:])
}

// Get reads the entry for (x, y).
func (t *Table16x256) Get(x, y byte) [32]byte {
	start := entryIndex(x, y) * entryBytes
	var out [32]byte
	copy(out[:], t.Data[start:start+entryBytes])
	return out
}

// RoundTables is the 32 byte-position tables for one round.
type RoundTables struct {
	Tables [32]*Table16x256
}

// NewRoundTables allocates 32 zeroed tables.
func NewRoundTables() *RoundTables {
	var rt RoundTables
	for i := range rt.Tables {
		rt.Tables[i] = NewTable16x256()
	}
	return &rt
}

// HTable is a random mask table h: byte -> 32-byte value.
type HTable struct {
	Data [256][32]byte
}

// RandSource is the capability HTable generation needs from a random
// source: filling an arbitrary byte slice.
type RandSource interface {
	Read(p []byte) (int, error)
}

// RandomHTable draws a uniformly random mask table, one 32-byte entry per
// possible input byte, in ascending input-byte order.
func RandomHTable(src RandSource) (*HTable, error) {
	var h HTable
	for i := range h.Data {
		if _, err := src.Read(h.Data[i][:]); err != nil {
			return nil, err
		}
	}
	return &h, nil
}

// Get returns the mask for input x.
func (h *HTable) Get(x byte) [32]byte {
	return h.Data[x]
}
