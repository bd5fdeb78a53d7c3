package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/nr"
)

func TestOffsetGeometryTranslatesDensity(t *testing.T) {
	inner := geom.Plummer{A: 1}
	shift := geom.NewPosition(3, 0, 0)
	g := geom.OffsetGeometry{Inner: inner, Shift: shift}
	assert.InDelta(t, inner.Density(geom.NewPosition(0, 0, 0)), g.Density(geom.NewPosition(3, 0, 0)), 1e-12)
}

func TestSphereCropRejectsWhenMostMassFallsOutside(t *testing.T) {
	inner := geom.Plummer{A: 100}
	r := nr.NewRandom(11, 0, 1, 0)
	_, err := geom.NewSphereCrop(inner, 0.01, r, 2000)
	assert.Error(t, err)
}

func TestSphereCropKeepsAllSamplesInside(t *testing.T) {
	inner := geom.Plummer{A: 1}
	r := nr.NewRandom(11, 0, 1, 0)
	crop, err := geom.NewSphereCrop(inner, 3, r, 5000)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		p := crop.GeneratePosition(r)
		assert.LessOrEqual(t, p.R(), 3.0)
	}
}

func TestCombineWeightsNormalizeAndBlendDensity(t *testing.T) {
	a := geom.Plummer{A: 1}
	b := geom.Shell{Rmin: 5, Rmax: 6}
	c := geom.NewCombine(a, b, 3, 1)
	assert.InDelta(t, 0.75, c.Wa, 1e-12)
	assert.InDelta(t, 0.25, c.Wb, 1e-12)

	p := geom.NewPosition(0, 0, 0)
	want := c.Wa*a.Density(p) + c.Wb*b.Density(p)
	assert.InDelta(t, want, c.Density(p), 1e-12)
}

func TestSphericalCavityZeroesInsideHole(t *testing.T) {
	inner := geom.Plummer{A: 2}
	center := geom.NewPosition(0, 0, 0)
	g := geom.SphericalCavity{Inner: inner, Center: center, Radius: 0.5}
	assert.Equal(t, 0.0, g.Density(geom.NewPosition(0.1, 0, 0)))
	assert.Greater(t, g.Density(geom.NewPosition(2, 0, 0)), 0.0)
}

func TestSphericalCavityGeneratePositionNeverLandsInHole(t *testing.T) {
	inner := geom.Plummer{A: 2}
	g := geom.SphericalCavity{Inner: inner, Center: geom.NewPosition(0, 0, 0), Radius: 0.5}
	r := nr.NewRandom(13, 0, 1, 0)
	for i := 0; i < 2000; i++ {
		p := g.GeneratePosition(r)
		dx, dy, dz := p.X, p.Y, p.Z
		assert.Greater(t, dx*dx+dy*dy+dz*dz, 0.25)
	}
}

func TestNewClumpyRejectsInvalidParameters(t *testing.T) {
	inner := geom.Plummer{A: 1}
	r := nr.NewRandom(17, 0, 1, 0)
	_, err := geom.NewClumpy(inner, 1.5, 10, 0.1, false, r)
	assert.Error(t, err)
	_, err = geom.NewClumpy(inner, 0.5, 0, 0.1, false, r)
	assert.Error(t, err)
	_, err = geom.NewClumpy(inner, 0.5, 10, 0, false, r)
	assert.Error(t, err)
}

func TestNewClumpyDensityPositiveAtCenter(t *testing.T) {
	inner := geom.Plummer{A: 1}
	r := nr.NewRandom(17, 0, 1, 0)
	c, err := geom.NewClumpy(inner, 0.5, 20, 0.05, false, r)
	require.NoError(t, err)
	assert.Greater(t, c.Density(geom.NewPosition(0, 0, 0)), 0.0)
}
