// Package affine implements affine maps over GF(2): x ↦ lin·x ⊕ bias, in
// the 8-bit and 256-bit widths the white-box construction needs for byte
// encodings and whole-state encodings respectively.
package affine

import "github.com/intersesh/wbaes/gf2"

// A8 is an 8-bit affine map x ↦ lin·x ⊕ bias.
type A8 struct {
	Lin  gf2.M8
	Bias byte
}

// NewA8 constructs an affine map from its components.
func NewA8(lin gf2.M8, bias byte) A8 {
	return A8{Lin: lin, Bias: bias}
}

// IdentityA8 is the identity affine map.
func IdentityA8() A8 {
	return NewA8(gf2.IdentityM8(), 0)
}

// RandomA8 draws a random invertible affine map.
func RandomA8(src gf2.RandSource) (A8, error) {
	lin, err := gf2.RandomInvertibleM8(src)
	if err != nil {
		return A8{}, err
	}
	bias := byte(src.Uint32())
	return NewA8(lin, bias), nil
}

// Apply evaluates the affine map at value.
func (a A8) Apply(value byte) byte {
	return a.Lin.Apply(value) ^ a.Bias
}

// Invert returns the inverse affine map, provided the linear part is
// invertible.
func (a A8) Invert() (A8, error) {
	linInv, err := a.Lin.Invert()
	if err != nil {
		return A8{}, err
	}
	bias := linInv.Apply(a.Bias)
	return NewA8(linInv, bias), nil
}

// Compose returns a ∘ other, i.e. the map x ↦ a.Apply(other.Apply(x)).
func (a A8) Compose(other A8) A8 {
	lin := a.Lin.Mul(other.Lin)
	bias := a.Lin.Apply(other.Bias) ^ a.Bias
	return NewA8(lin, bias)
}

// A256 is a 256-bit affine map x ↦ lin·x ⊕ bias, operating on 32-byte
// states.
type A256 struct {
	Lin  gf2.M256
	Bias [32]byte
}

// NewA256 constructs an affine map from its components.
func NewA256(lin gf2.M256, bias [32]byte) A256 {
	return A256{Lin: lin, Bias: bias}
}

// IdentityA256 is the identity affine map.
func IdentityA256() A256 {
	return NewA256(gf2.IdentityM256(), [32]byte{})
}

// RandomSparseUnsplitA256 draws a random affine map whose linear part is a
// sparse-banded invertible M256 (see gf2.RandomSparseUnsplit) and whose
// bias is drawn uniformly.
func RandomSparseUnsplitA256(src gf2.RandSource) (A256, error) {
	lin, err := gf2.RandomSparseUnsplit(src)
	if err != nil {
		return A256{}, err
	}
	var bias [32]byte
	if _, err := src.Read(bias[:]); err != nil {
		return A256{}, err
	}
	return NewA256(lin, bias), nil
}

// Apply evaluates the affine map at value.
func (a A256) Apply(value [32]byte) [32]byte {
	out := a.Lin.ApplyToBytes(value)
	for i := range out {
		out[i] ^= a.Bias[i]
	}
	return out
}

// ApplyInPlace evaluates the affine map, overwriting value.
func (a A256) ApplyInPlace(value *[32]byte) {
	*value = a.Apply(*value)
}

// Invert returns the inverse affine map, provided the linear part is
// invertible.
func (a A256) Invert() (A256, error) {
	linInv, err := a.Lin.Invert()
	if err != nil {
		return A256{}, err
	}
	bias := linInv.ApplyToBytes(a.Bias)
	return NewA256(linInv, bias), nil
}

// Compose returns a ∘ other, i.e. the map x ↦ a.Apply(other.Apply(x)).
func (a A256) Compose(other A256) A256 {
	lin := a.Lin.Mul(other.Lin)
	biasFromOther := a.Lin.ApplyToBytes(other.Bias)
	bias := a.Bias
	for i := range bias {
		bias[i] ^= biasFromOther[i]
	}
	return NewA256(lin, bias)
}
