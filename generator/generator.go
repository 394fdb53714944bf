// Package generator builds a white-box AES instance from an AES-128 key
// and a random source, following the Baek–Cheon–Hong (2016) "revisited"
// scheme: ten rounds of affine encodings folded into sbox lookups, XOR-
// masked with random H-tables so that no single table leaks a linear
// relationship between rounds.
package generator

import (
	"golang.org/x/sync/errgroup"

	"github.com/intersesh/wbaes/aescore"
	"github.com/intersesh/wbaes/affine"
	"github.com/intersesh/wbaes/gf2"
	"github.com/intersesh/wbaes/instance"
	"github.com/intersesh/wbaes/linear"
	"github.com/intersesh/wbaes/tables"
)

// RandSource is the random source a Generator consumes. rng.Source
// satisfies it structurally.
type RandSource interface {
	Uint32() uint32
	Read(p []byte) (int, error)
}

// Config controls optional generation behavior.
type Config struct {
	// ExternalEncodings, when true, wraps the instance in an additional
	// random input encoding and a random output encoding. The output
	// encoding is folded into the final round's tables, so the instance's
	// Encodings.Output stays nil and the instance does not record that an
	// output encoding was applied. When false, the instance's only external encoding is the one that
	// folds AddRoundKey(0) into the input, and no output encoding is
	// applied.
	ExternalEncodings bool
}

// Generator builds white-box instances from a fixed random source.
type Generator struct {
	src    RandSource
	config Config
}

// New creates a Generator with the default configuration.
func New(src RandSource) *Generator {
	return &Generator{src: src}
}

// WithConfig creates a Generator with explicit configuration.
func WithConfig(src RandSource, config Config) *Generator {
	return &Generator{src: src, config: config}
}

// Generate builds a white-box instance for the given AES-128 key. Random
// draws happen in a fixed order — A^(1)..A^(10), then M_in/M_out if
// enabled, then per round the 31 bias shares followed by the 32 H-tables —
// so that the same (key, source-state) always produces the same instance,
// regardless of how table population is parallelized afterward.
func (g *Generator) Generate(key aescore.Aes128Key) (*instance.Instance, error) {
	roundKeys := aescore.ExpandKey(key)
	mcSr := linear.McSr256()
	srOnly := linear.Sr256()

	key0Block := duplicateRoundKey(roundKeys.Get(0))
	key0Affine := affine.NewA256(gf2.IdentityM256(), key0Block)

	aEncodings := make([]affine.A256, 10)
	for r := 0; r < 10; r++ {
		a, err := affine.RandomSparseUnsplitA256(g.src)
		if err != nil {
			return nil, err
		}
		aEncodings[r] = a
	}

	minEncoding := affine.IdentityA256()
	var moutEncoding *affine.A256
	if g.config.ExternalEncodings {
		min, err := affine.RandomSparseUnsplitA256(g.src)
		if err != nil {
			return nil, err
		}
		minEncoding = min

		mout, err := affine.RandomSparseUnsplitA256(g.src)
		if err != nil {
			return nil, err
		}
		moutEncoding = &mout
	}

	a1Inv, err := aEncodings[0].Invert()
	if err != nil {
		return nil, err
	}
	minTotal := minEncoding.Compose(key0Affine)
	inputEncoding := a1Inv.Compose(minTotal)

	var rounds [10]*tables.RoundTables
	for r := 0; r < 10; r++ {
		aCurr := aEncodings[r]

		identityOutput := affine.IdentityA256()
		nextAffine := &identityOutput
		if r == 9 {
			if moutEncoding != nil {
				nextAffine = moutEncoding
			}
		} else {
			nextAffine = &aEncodings[r+1]
		}

		linearLayer := mcSr
		if r == 9 {
			linearLayer = srOnly
		}

		roundKeyBlock := duplicateRoundKey(roundKeys.Get(r + 1))
		roundTables, err := g.buildRound(aCurr, *nextAffine, linearLayer, roundKeyBlock)
		if err != nil {
			return nil, err
		}
		rounds[r] = roundTables
	}

	return &instance.Instance{
		Rounds: rounds,
		Encodings: instance.ExternalEncodings{
			Input:  inputEncoding,
			Output: nil,
		},
		Params: instance.DefaultParams(),
	}, nil
}

// buildRound populates the 32 tables for one round. The RNG draws (bias
// shares, then H-tables) happen here, sequentially, before the embarrassingly
// parallel table-fill work below is fanned out across goroutines.
func (g *Generator) buildRound(aCurr, nextAffine affine.A256, linearLayer gf2.M256, roundKeyBlock [32]byte) (*tables.RoundTables, error) {
	nextInv, err := nextAffine.Lin.Invert()
	if err != nil {
		return nil, err
	}
	bLin := nextInv.Mul(linearLayer)

	bBiasTarget := nextInv.ApplyToBytes(nextAffine.Bias)
	keyContribution := nextInv.ApplyToBytes(roundKeyBlock)
	for i := range bBiasTarget {
		bBiasTarget[i] ^= keyContribution[i]
	}

	bBiases, err := splitBiases(g.src, bBiasTarget)
	if err != nil {
		return nil, err
	}

	var bMaps [32][256][32]byte
	for i := 0; i < 32; i++ {
		bMaps[i] = bLin.SubmatrixByteMap(i)
	}

	var hTables [32]*tables.HTable
	for i := 0; i < 32; i++ {
		h, err := tables.RandomHTable(g.src)
		if err != nil {
			return nil, err
		}
		hTables[i] = h
	}

	roundTables := tables.NewRoundTables()

	group := new(errgroup.Group)
	for i := 0; i < 32; i++ {
		i := i
		group.Go(func() error {
			fillTable(roundTables.Tables[i], aCurr, i, bBiases[i], bMaps[i], hTables[i], hTables[(i+1)%32])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return roundTables, nil
}

func fillTable(table *tables.Table16x256, aCurr affine.A256, i int, bBias [32]byte, bMap [256][32]byte, hI, hNext *tables.HTable) {
	blockLeft := aCurr.Lin.Block(i, i)
	rightIdx := (i + 1) % 32
	blockRight := aCurr.Lin.Block(i, rightIdx)
	aBias := aCurr.Bias[i]

	for x := 0; x < 256; x++ {
		hx := hI.Get(byte(x))
		for y := 0; y < 256; y++ {
			z := blockLeft.Apply(byte(x)) ^ blockRight.Apply(byte(y)) ^ aBias
			t := aescore.SBox(z)

			value := bMap[t]
			for k := range value {
				value[k] ^= bBias[k]
			}
			for k := range value {
				value[k] ^= hx[k]
			}
			hy := hNext.Get(byte(y))
			for k := range value {
				value[k] ^= hy[k]
			}

			table.Set(byte(x), byte(y), value)
		}
	}
}

// splitBiases draws 31 random 32-byte shares and computes a 32nd so that
// all 32 XOR together to target. The last share is derived, not drawn, so
// it consumes no randomness.
func splitBiases(src RandSource, target [32]byte) ([32][32]byte, error) {
	var biases [32][32]byte
	var accum [32]byte
	for i := 0; i < 31; i++ {
		if _, err := src.Read(biases[i][:]); err != nil {
			return biases, err
		}
		for k := range accum {
			accum[k] ^= biases[i][k]
		}
	}
	for k := range biases[31] {
		biases[31][k] = target[k] ^ accum[k]
	}
	return biases, nil
}

func duplicateRoundKey(roundKey aescore.Block) [32]byte {
	var out [32]byte
	copy(out[:16], roundKey[:])
	copy(out[16:], roundKey[:])
	return out
}
