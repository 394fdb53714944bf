package instance

import (
	"errors"
	"testing"

	"github.com/intersesh/wbaes/affine"
	"github.com/intersesh/wbaes/tables"
	"github.com/stretchr/testify/require"
)

func newFixture() *Instance {
	var rounds [10]*tables.RoundTables
	for i := range rounds {
		rounds[i] = tables.NewRoundTables()
	}
	rounds[0].Tables[0].Set(1, 2, [32]byte{0xaa})

	return &Instance{
		Rounds: rounds,
		Encodings: ExternalEncodings{
			Input:  affine.IdentityA256(),
			Output: nil,
		},
		Params: DefaultParams(),
	}
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	inst := newFixture()
	data, err := inst.Marshal()
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	require.Equal(t, inst.Params, decoded.Params)
	require.Nil(t, decoded.Encodings.Output)
	require.Equal(t, inst.Encodings.Input, decoded.Encodings.Input)
	require.Equal(t, [32]byte{0xaa}, decoded.Rounds[0].Tables[0].Get(1, 2))
	require.Equal(t, [32]byte{}, decoded.Rounds[0].Tables[0].Get(0, 0))
}

func TestUnmarshalRejectsVersionMismatch(t *testing.T) {
	inst := newFixture()
	inst.Params.Version = 99
	data, err := inst.Marshal()
	require.NoError(t, err)

	_, err = Unmarshal(data)
	require.True(t, errors.Is(err, ErrVersionMismatch))
}

func TestUnmarshalRejectsSchemeMismatch(t *testing.T) {
	inst := newFixture()
	inst.Params.Scheme = SchemeID(99)
	data, err := inst.Marshal()
	require.NoError(t, err)

	_, err = Unmarshal(data)
	require.True(t, errors.Is(err, ErrSchemeMismatch))
}

func TestUnmarshalRejectsShapeMismatch(t *testing.T) {
	inst := newFixture()
	inst.Params.BlockBytes = 16
	data, err := inst.Marshal()
	require.NoError(t, err)

	_, err = Unmarshal(data)
	require.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestOutputEncodingRoundtrip(t *testing.T) {
	inst := newFixture()
	out := affine.IdentityA256()
	inst.Encodings.Output = &out

	data, err := inst.Marshal()
	require.NoError(t, err)
	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	require.NotNil(t, decoded.Encodings.Output)
	require.Equal(t, out, *decoded.Encodings.Output)
}
