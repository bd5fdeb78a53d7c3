// Package simtree carries the small resource handle threaded through
// setup instead of a mutable parent-pointer tree (Design Notes, "mutable
// parent chains"): a random-stream factory, the simulation's wavelength
// grid, a resource loader and a logger. Nothing else survives setup as
// shared mutable state.
package simtree

import (
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/soniakeys/dustrt/grain"
	"github.com/soniakeys/dustrt/nr"
)

// WavelengthGrid is the ordered, strictly-increasing wavelength sequence
// every resource lookup and mixture setup is evaluated against.
type WavelengthGrid struct {
	Lambdas nr.Array // meters, strictly increasing
}

// NLambda returns the number of wavelength points.
func (w *WavelengthGrid) NLambda() int { return len(w.Lambdas) }

// Lambda returns the ell'th wavelength.
func (w *WavelengthGrid) Lambda(ell int) float64 { return w.Lambdas[ell] }

// borders returns the N+1 bin borders for the grid's N wavelength points:
// the geometric mean of each adjacent pair of points, with the end bins
// extended out to the outermost points themselves.
func (w *WavelengthGrid) borders() nr.Array {
	n := len(w.Lambdas)
	b := make(nr.Array, n+1)
	b[0] = w.Lambdas[0]
	b[n] = w.Lambdas[n-1]
	for i := 1; i < n; i++ {
		b[i] = math.Sqrt(w.Lambdas[i-1] * w.Lambdas[i])
	}
	return b
}

// Nearest returns the index of the bin containing lambda, or -1 if out of
// range; bin borders are the geometric means of adjacent grid points, with
// the end bins extended to the outermost points.
func (w *WavelengthGrid) Nearest(lambda float64) int {
	n := len(w.Lambdas)
	if n == 0 || lambda < w.Lambdas[0] || lambda > w.Lambdas[n-1] {
		return -1
	}
	b := w.borders()
	i := nr.Locate(b, lambda, nr.PolicyClip)
	if i >= n {
		i = n - 1
	}
	return i
}

// DeltaLambda returns the width of the ell'th bin (see borders).
func (w *WavelengthGrid) DeltaLambda(ell int) float64 {
	b := w.borders()
	return b[ell+1] - b[ell]
}

// LambdaMin returns the lower border of the ell'th bin.
func (w *WavelengthGrid) LambdaMin(ell int) float64 {
	return w.borders()[ell]
}

// LambdaMax returns the upper border of the ell'th bin.
func (w *WavelengthGrid) LambdaMax(ell int) float64 {
	return w.borders()[ell+1]
}

// Handle is the resource handle passed to every setup function: a
// per-worker random-stream factory (not a single shared stream), the
// simulation's wavelength grid, a grain-resource loader, and a logger for
// the non-fatal diagnostics setup and traversal may emit (see section 7).
type Handle struct {
	BaseSeed      uint64
	ProcessRank   int
	ProcessStride int

	Wavelengths *WavelengthGrid
	Loader      *grain.Loader
	Logger      *log.Logger
}

// NewRandom hands out an independent PRNG stream for worker workerIndex,
// per the seed-striping rule of section 4.1/5.
func (h *Handle) NewRandom(workerIndex int) *nr.Random {
	return nr.NewRandom(h.BaseSeed, h.ProcessRank, h.ProcessStride, workerIndex)
}

// NewID mints a stable identity for a setup-tree node (geometry, mixture,
// grid, composition), used for peel-off/debug traceability the way
// Gekko3D's ECS entities are uuid-tagged.
func (h *Handle) NewID() uuid.UUID { return uuid.New() }
