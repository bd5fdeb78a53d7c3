package nr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/dustrt/nr"
)

func TestCDFInversionScenario(t *testing.T) {
	// spec section 8, scenario 5.
	x := nr.Array{0, 1, 2, 3, 4}
	p := nr.Array{1, 2, 3, 4}
	c := nr.NewCDF(x, p)
	assert.InDelta(t, 0.1, c.P[1], 1e-12)
	assert.InDelta(t, 0.3, c.P[2], 1e-12)
	assert.InDelta(t, 0.6, c.P[3], 1e-12)
	assert.InDelta(t, 1.0, c.P[4], 1e-12)
	assert.InDelta(t, 2.5, c.Sample(0.45), 1e-9)
}

func TestCDFSampleStaysWithinBorders(t *testing.T) {
	x := nr.Array{0, 1, 2, 3, 4, 5}
	p := nr.Array{1, 1, 1, 1, 1}
	c := nr.NewCDF(x, p)
	for _, u := range []float64{0, 0.1, 0.37, 0.5, 0.99} {
		v := c.Sample(u)
		assert.GreaterOrEqual(t, v, x[0])
		assert.LessOrEqual(t, v, x[len(x)-1])
	}
}
