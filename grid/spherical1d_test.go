package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/grid"
	"github.com/soniakeys/dustrt/nr"
)

// TestSpherical1DPathScenario exercises spec section 8 scenario 2.
func TestSpherical1DPathScenario(t *testing.T) {
	g := &grid.Spherical1D{Rb: nr.Array{0, 1, 2, 3}}
	p := g.Path(geom.NewPosition(-5, 0, 0), geom.NewDirection(1, 0, 0))
	if assert.Len(t, p, 7) {
		assert.Equal(t, -1, p[0].Cell)
		assert.InDelta(t, 2.0, p[0].Ds, 1e-9)
		wantCells := []int{2, 1, 0, 0, 1, 2}
		for idx, c := range wantCells {
			assert.Equal(t, c, p[idx+1].Cell)
			assert.InDelta(t, 1.0, p[idx+1].Ds, 1e-9)
		}
	}
}

func TestSpherical1DTangentReturnsEmpty(t *testing.T) {
	g := &grid.Spherical1D{Rb: nr.Array{0, 1, 2, 3}}
	p := g.Path(geom.NewPosition(-5, 3, 0), geom.NewDirection(1, 0, 0))
	assert.Empty(t, p)
}

func TestSpherical1DVolumeSum(t *testing.T) {
	g := &grid.Spherical1D{Rb: nr.Array{0, 1, 2, 3}}
	sum := 0.0
	for m := 0; m < g.NCells(); m++ {
		sum += g.Volume(m)
	}
	assert.InDelta(t, 4.0/3.0*3.141592653589793*27, sum, 1e-6)
}
