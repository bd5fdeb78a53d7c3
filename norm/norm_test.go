package norm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/dustrt/dustmix"
	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/grain"
	"github.com/soniakeys/dustrt/norm"
	"github.com/soniakeys/dustrt/nr"
)

const fixture = `# two sizes, two wavelengths
2
2
0.01
1.0 0.8 0.4 0.5
10.0 0.2 0.1 0.4
0.1
1.0 0.9 0.5 0.4
10.0 0.3 0.2 0.3
`

func buildMixture(t *testing.T) *dustmix.Mixture {
	t.Helper()
	l := &grain.Loader{RhoBulk: 3000}
	c, err := l.Load(strings.NewReader(fixture), "fixture")
	require.NoError(t, err)
	dist := grain.PowerLaw{AMinV: c.AMin(), AMaxV: c.AMax(), C: 1, P: 3.5}
	lambdas := nr.LogGrid(c.LambdaMin(), c.LambdaMax(), 3)
	m, err := dustmix.New(lambdas, []dustmix.Population{{Comp: c, Dist: dist, NBins: 1}})
	require.NoError(t, err)
	return m
}

func TestByDustMassIsIdentityOnUnitDensity(t *testing.T) {
	nf, err := norm.ByDustMass{MDust: 2.5}.Apply(nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, nf)
}

func TestByFaceOnTauRejectsNonAxisymmetric(t *testing.T) {
	m := buildMixture(t)
	box := geom.UniformBox{Box: geom.Box{
		Min: geom.NewPosition(-1, -1, -1),
		Max: geom.NewPosition(1, 1, 1),
	}}
	_, err := norm.ByFaceOnTau{Tau: 1}.Apply(box, m, 0)
	assert.Error(t, err)
}

func TestByAxisTauAcceptsAnyGeometry(t *testing.T) {
	m := buildMixture(t)
	box := geom.UniformBox{Box: geom.Box{
		Min: geom.NewPosition(-1, -1, -1),
		Max: geom.NewPosition(1, 1, 1),
	}}
	nf, err := norm.ByAxisTau{Axis: norm.AxisZ, Tau: 1}.Apply(box, m, 0)
	require.NoError(t, err)
	assert.Greater(t, nf, 0.0)
}
