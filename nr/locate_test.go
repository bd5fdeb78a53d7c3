package nr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/dustrt/nr"
)

func TestLocateBasic(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	assert.Equal(t, -1, nr.Locate(x, -1, nr.PolicyBasic))
	assert.Equal(t, 0, nr.Locate(x, 0, nr.PolicyBasic))
	assert.Equal(t, 0, nr.Locate(x, 0.5, nr.PolicyBasic))
	assert.Equal(t, 3, nr.Locate(x, 4, nr.PolicyBasic), "x==x_N returns N-1")
	assert.Equal(t, 4, nr.Locate(x, 5, nr.PolicyBasic))
}

func TestLocateClip(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	assert.Equal(t, 0, nr.Locate(x, -5, nr.PolicyClip))
	assert.Equal(t, 3, nr.Locate(x, 100, nr.PolicyClip))
	assert.Equal(t, 3, nr.Locate(x, 4, nr.PolicyClip))
	assert.Equal(t, 1, nr.Locate(x, 1.5, nr.PolicyClip))
}

func TestLocateFail(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	assert.Equal(t, -1, nr.Locate(x, -1, nr.PolicyFail))
	assert.Equal(t, -1, nr.Locate(x, 5, nr.PolicyFail))
	assert.Equal(t, 3, nr.Locate(x, 4, nr.PolicyFail))
}

func TestLocateMonotone(t *testing.T) {
	x := []float64{0, 1, 2, 5, 10}
	prev := nr.Locate(x, -1, nr.PolicyBasic)
	for _, v := range []float64{-1, 0, 0.5, 1, 3, 5, 7, 10, 11} {
		cur := nr.Locate(x, v, nr.PolicyBasic)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}
