// Package nr collects the dense-array, interpolation, grid-construction,
// CDF and random-sampling primitives that the rest of dustrt is built on.
//
// Everything here is leaf-level: it has no notion of geometry, dust or
// photons, only of ordered sequences of floating point numbers and of
// drawing samples from them. Elementwise array arithmetic and the
// distribution samplers lean on gonum.org/v1/gonum rather than
// reimplementing them, the way the rest of the retrieved pack does for
// numeric-heavy Go code.
package nr
