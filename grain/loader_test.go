package grain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/dustrt/grain"
)

const sampleResource = `# sample composition, two sizes, two wavelengths
2
2
0.01
1.0 0.5 0.3 0.6
10.0 0.8 0.1 0.5
0.1
1.0 0.9 0.7 0.2
10.0 0.95 0.4 0.1
`

func TestLoadResourceFile(t *testing.T) {
	l := &grain.Loader{RhoBulk: 3000}
	c, err := l.Load(strings.NewReader(sampleResource), "sample")
	require.NoError(t, err)
	assert.Equal(t, 2, len(c.ASizes))
	assert.Equal(t, 2, len(c.Lambdas))
	assert.InDelta(t, 1e-8, c.ASizes[0], 1e-12)
	assert.InDelta(t, 1e-6, c.Lambdas[0], 1e-12)
	assert.InDelta(t, 0.5, c.Qabsolute(c.Lambdas[0], c.ASizes[0]), 1e-9)
}

func TestLoadResourceFileRejectsTruncated(t *testing.T) {
	l := &grain.Loader{RhoBulk: 3000}
	_, err := l.Load(strings.NewReader("2\n2\n0.01\n"), "broken")
	assert.Error(t, err)
}
