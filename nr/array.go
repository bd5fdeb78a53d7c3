package nr

import "gonum.org/v1/gonum/floats"

// Array is a fixed-length ordered sequence of finite-precision values. It
// backs wavelength grids, cross sections, radial meshes and cumulative
// distributions throughout dustrt.
type Array []float64

// NewArray allocates a zeroed Array of length n.
func NewArray(n int) Array { return make(Array, n) }

// Clone returns an independent copy; operations on Array never alias
// shared storage.
func (a Array) Clone() Array {
	b := make(Array, len(a))
	copy(b, a)
	return b
}

// AddScalar returns a new array with s added elementwise.
func (a Array) AddScalar(s float64) Array {
	b := a.Clone()
	floats.AddConst(s, b)
	return b
}

// Scale returns a new array scaled elementwise by s.
func (a Array) Scale(s float64) Array {
	b := a.Clone()
	floats.Scale(s, b)
	return b
}

// Add returns the elementwise sum of a and b; panics if lengths differ,
// mirroring floats.Add.
func (a Array) Add(b Array) Array {
	c := a.Clone()
	floats.Add(c, b)
	return c
}

// Sum returns the sum of all elements.
func (a Array) Sum() float64 { return floats.Sum(a) }

// Max returns the largest element; panics on an empty array.
func (a Array) Max() float64 { return floats.Max(a) }

// Min returns the smallest element; panics on an empty array.
func (a Array) Min() float64 { return floats.Min(a) }
