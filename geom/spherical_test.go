package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/nr"
	"github.com/soniakeys/dustrt/stats"
)

// sampleMassFraction draws n positions from g and returns the fraction
// landing inside radius R, for comparison against the analytic
// enclosed-mass fraction; NewSphereCrop performs a similar Monte Carlo
// count on construction.
func sampleMassFraction(t *testing.T, g geom.Geometry, radius float64, n int) float64 {
	t.Helper()
	r := nr.NewRandom(1, 0, 1, 0)
	inside := 0
	for i := 0; i < n; i++ {
		p := g.GeneratePosition(r)
		if p.R() <= radius {
			inside++
		}
	}
	return float64(inside) / float64(n)
}

func TestPlummerSigmaRPositive(t *testing.T) {
	g := geom.Plummer{A: 1.5}
	assert.Greater(t, g.SigmaR(), 0.0)
	assert.InDelta(t, g.SigmaX(), 2*g.SigmaR(), 1e-9)
}

func TestPlummerGeneratePositionConvergesToHalfMassRadius(t *testing.T) {
	// the Plummer half-mass radius is a/sqrt(2^(2/3)-1).
	a := 1.0
	g := geom.Plummer{A: a}
	half := a / math.Sqrt(math.Pow(2, 2.0/3.0)-1)
	frac := sampleMassFraction(t, g, half, 20000)
	assert.InDelta(t, 0.5, frac, 0.05)
}

func TestShellDensityZeroOutsideBand(t *testing.T) {
	g := geom.Shell{Rmin: 1, Rmax: 2}
	assert.Equal(t, 0.0, g.DensityR(0.5))
	assert.Equal(t, 0.0, g.DensityR(2.5))
	assert.Greater(t, g.DensityR(1.5), 0.0)
}

func TestShellGeneratePositionStaysInBand(t *testing.T) {
	g := geom.Shell{Rmin: 1, Rmax: 2}
	r := nr.NewRandom(7, 0, 1, 0)
	for i := 0; i < 500; i++ {
		p := g.GeneratePosition(r)
		assert.GreaterOrEqual(t, p.R(), 1.0-1e-9)
		assert.LessOrEqual(t, p.R(), 2.0+1e-9)
	}
}

func TestGaussianMassIntegralNearUnity(t *testing.T) {
	g := geom.Gaussian{Sigma: 1}
	// Riemann sum over a dense radial shell partition via
	// stats.MassIntegral.
	const n = 4000
	rmax := 12.0
	edges := nr.LinGrid(0, rmax, n+1)
	density := make([]float64, n)
	volume := make([]float64, n)
	for i := 0; i < n; i++ {
		rm := 0.5 * (edges[i] + edges[i+1])
		density[i] = g.DensityR(rm)
		volume[i] = 4.0 / 3.0 * 3.141592653589793 * (edges[i+1]*edges[i+1]*edges[i+1] - edges[i]*edges[i]*edges[i])
	}
	total := stats.MassIntegral(density, volume)
	assert.InDelta(t, 1.0, total, 1e-3)
}

func TestSersicRejectsNothingButConverges(t *testing.T) {
	g := &geom.Sersic{Re: 1, N: 2}
	r := nr.NewRandom(3, 0, 1, 0)
	total := 0.0
	for i := 0; i < 5000; i++ {
		p := g.GeneratePosition(r)
		require.GreaterOrEqual(t, p.R(), 0.0)
		total += g.Density(p)
	}
	assert.Greater(t, total, 0.0)
	assert.Greater(t, g.SigmaR(), 0.0)
}

func TestEinastoDensityDecreasesOutward(t *testing.T) {
	g := geom.Einasto{H: 1, N: 4}
	assert.Greater(t, g.DensityR(0.1), g.DensityR(1.0))
	assert.Greater(t, g.DensityR(1.0), g.DensityR(5.0))
}
