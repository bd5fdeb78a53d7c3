package grid

import (
	"github.com/soniakeys/dustrt/nr"
)

// TwoPhase wraps a Cartesian3D grid with a two-phase (clumpy/diffuse)
// density decoration: each cell is independently assigned to the
// high-density phase with probability ff (filling factor), carrying a
// weight whose expected value over all cells is exactly 1.
type TwoPhase struct {
	*Cartesian3D
	weights []float64
}

// NewTwoPhase draws the per-cell phase assignment once at setup, per
// section 4.3: weight is C/(C*ff+1-ff) with probability ff, else
// 1/(C*ff+1-ff).
func NewTwoPhase(inner *Cartesian3D, ff, contrast float64, r *nr.Random) *TwoPhase {
	n := inner.NCells()
	w := make([]float64, n)
	denom := contrast*ff + 1 - ff
	hi := contrast / denom
	lo := 1 / denom
	for m := 0; m < n; m++ {
		if r.Uniform() < ff {
			w[m] = hi
		} else {
			w[m] = lo
		}
	}
	return &TwoPhase{Cartesian3D: inner, weights: w}
}

func (g *TwoPhase) Weight(m int) float64 { return g.weights[m] }

var _ DustGrid = (*TwoPhase)(nil)
