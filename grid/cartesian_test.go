package grid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/grid"
	"github.com/soniakeys/dustrt/nr"
)

// TestCartesianPathScenario exercises spec section 8 scenario 1.
func TestCartesianPathScenario(t *testing.T) {
	g := &grid.Cartesian3D{
		Xb: nr.Array{-1, 0, 1},
		Yb: nr.Array{-1, 0, 1},
		Zb: nr.Array{-1, 0, 1},
	}
	p := g.Path(geom.NewPosition(-2, 0.5, 0.5), geom.NewDirection(1, 0, 0))
	if assert.Len(t, p, 3) {
		assert.Equal(t, -1, p[0].Cell)
		assert.InDelta(t, 1.0, p[0].Ds, 1e-6)
		assert.Equal(t, 3, p[1].Cell)
		assert.Equal(t, 7, p[2].Cell)
		assert.InDelta(t, 2.0, p.TaggedLength(), 1e-6)
	}
}

func TestCartesianVolumeSum(t *testing.T) {
	g := &grid.Cartesian3D{
		Xb: nr.LinGrid(-1, 1, 4),
		Yb: nr.LinGrid(-1, 1, 3),
		Zb: nr.LinGrid(-1, 1, 2),
	}
	sum := 0.0
	for m := 0; m < g.NCells(); m++ {
		sum += g.Volume(m)
	}
	assert.InDelta(t, 8.0, sum, 1e-9)
}

func TestTwoPhaseMeanWeight(t *testing.T) {
	r := nr.NewRandom(4357, 0, 1, 0)
	g := &grid.Cartesian3D{
		Xb: nr.LinGrid(-1, 1, 10),
		Yb: nr.LinGrid(-1, 1, 10),
		Zb: nr.LinGrid(-1, 1, 10),
	}
	tp := grid.NewTwoPhase(g, 0.3, 100, r)
	sum := 0.0
	n := tp.NCells()
	for m := 0; m < n; m++ {
		sum += tp.Weight(m)
	}
	mean := sum / float64(n)
	// binomial estimate of the standard error on the mean weight; the
	// mean must lie within three of them of 1.
	denom := 100*0.3 + 1 - 0.3
	sigma := (100/denom - 1/denom) * math.Sqrt(0.3*0.7/float64(n))
	assert.InDelta(t, 1.0, mean, 3*sigma)
}
