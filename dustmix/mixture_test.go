package dustmix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/dustrt/dustmix"
	"github.com/soniakeys/dustrt/grain"
	"github.com/soniakeys/dustrt/nr"
)

const fixture = `# two sizes, three wavelengths
2
3
0.01
1.0 0.8 0.4 0.5
5.0 0.4 0.2 0.45
10.0 0.1 0.05 0.4
0.2
1.0 0.9 0.5 0.4
5.0 0.5 0.3 0.35
10.0 0.2 0.1 0.3
`

func buildMixture(t *testing.T) *dustmix.Mixture {
	t.Helper()
	l := &grain.Loader{RhoBulk: 3000}
	c, err := l.Load(strings.NewReader(fixture), "fixture")
	require.NoError(t, err)

	dist := grain.PowerLaw{AMinV: c.AMin(), AMaxV: c.AMax(), C: 1, P: 3.5}
	lambdas := nr.LogGrid(c.LambdaMin(), c.LambdaMax(), 4)
	m, err := dustmix.New(lambdas, []dustmix.Population{{Comp: c, Dist: dist, NBins: 2}})
	require.NoError(t, err)
	return m
}

func TestAggregateOpacityConsistency(t *testing.T) {
	m := buildMixture(t)
	for ell := range m.Lambdas {
		assert.InDelta(t, m.KappaExt[ell], m.KappaAbs[ell]+m.KappaSca[ell], 1e-9)
		if m.KappaExt[ell] > 0 {
			assert.InDelta(t, m.Albedo[ell], m.KappaSca[ell]/m.KappaExt[ell], 1e-9)
		}
		assert.GreaterOrEqual(t, m.Albedo[ell], 0.0)
		assert.LessOrEqual(t, m.Albedo[ell], 1.0)
	}
}

func TestEquilibriumTemperatureMonotone(t *testing.T) {
	m := buildMixture(t)
	lo := m.EquilibriumTemperature(0, 1e-30)
	hi := m.EquilibriumTemperature(0, 1e10)
	assert.Less(t, lo, hi)
}

func TestRejectsNarrowWavelengthCoverage(t *testing.T) {
	l := &grain.Loader{RhoBulk: 3000}
	c, err := l.Load(strings.NewReader(fixture), "fixture")
	require.NoError(t, err)
	dist := grain.PowerLaw{AMinV: c.AMin(), AMaxV: c.AMax(), C: 1, P: 3.5}
	lambdas := nr.Array{c.LambdaMin() * 0.1, c.LambdaMax()}
	_, err = dustmix.New(lambdas, []dustmix.Population{{Comp: c, Dist: dist, NBins: 1}})
	assert.Error(t, err)
}
