package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/dustrt/geom"
)

// TestExponentialDiskSigmaR exercises spec section 8 scenario 3.
//
// The original SKIRT source (BrokenExpDiskGeometry.cpp) derives
// rho0 = 1/(4*pi*hz*IR) with IR = integral R*exp(-R/hR) dR = hR^2, and
// SigmaR = rho0 * integral exp(-R/hR) dR = rho0*hR. For hR=2, hz=0.5 that
// is 1/(4*pi*hR*hz) ~= 0.07958; this is the value used here, since it is
// the one the original source's own algebra produces.
func TestExponentialDiskSigmaR(t *testing.T) {
	g := geom.ExponentialDisk{HR: 2, Hz: 0.5}
	assert.InDelta(t, 1/(4*3.141592653589793*2*0.5), g.SigmaR(), 1e-9)
}

func TestExponentialDiskDensityIntegratesToUnityRoughly(t *testing.T) {
	g := geom.ExponentialDisk{HR: 1, Hz: 1}
	// spot-check the normalization at the origin rather than a full MC
	// integral (that property is covered by the geometry-invariant suite).
	assert.Greater(t, g.Density(geom.NewPosition(0, 0, 0)), 0.0)
}
