package photon_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/dustrt/dustmix"
	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/grain"
	"github.com/soniakeys/dustrt/grid"
	"github.com/soniakeys/dustrt/nr"
	"github.com/soniakeys/dustrt/photon"
)

const fixture = `# two sizes, two wavelengths
2
2
0.01
1.0 0.9 0.5 0.5
10.0 0.3 0.1 0.4
0.1
1.0 0.95 0.6 0.4
10.0 0.4 0.2 0.3
`

func buildOrchestrator(t *testing.T) (*photon.Orchestrator, *grid.Cartesian3D, *dustmix.Mixture) {
	t.Helper()
	l := &grain.Loader{RhoBulk: 3000}
	c, err := l.Load(strings.NewReader(fixture), "fixture")
	require.NoError(t, err)
	dist := grain.PowerLaw{AMinV: c.AMin(), AMaxV: c.AMax(), C: 1, P: 3.5}
	lambdas := nr.LogGrid(c.LambdaMin(), c.LambdaMax(), 3)
	m, err := dustmix.New(lambdas, []dustmix.Population{{Comp: c, Dist: dist, NBins: 1}})
	require.NoError(t, err)

	border := nr.LinGrid(-1, 1, 5)
	g := &grid.Cartesian3D{Xb: border, Yb: border, Zb: border}
	return &photon.Orchestrator{Grid: g, Mixture: m}, g, m
}

func TestRunBundleTerminatesAndConservesNonNegativeLuminosity(t *testing.T) {
	orch, g, _ := buildOrchestrator(t)
	r := nr.NewRandom(4357, 0, 1, 0)
	acc := photon.NewAccumulator(g.NCells(), 3, 0, 0)

	for i := 0; i < 200; i++ {
		p := photon.NewLaunched(geom.NewPosition(0, 0, 0), geom.NewDirection(1, 0.3, -0.2), 1, 1.0, uuid.New())
		orch.RunBundle(p, r, acc)
		assert.Equal(t, photon.Terminated, p.State)
	}

	total := 0.0
	for cell := 0; cell < g.NCells(); cell++ {
		for ell := 0; ell < 3; ell++ {
			v := acc.Absorbed(cell, ell)
			assert.GreaterOrEqual(t, v, 0.0)
			total += v
		}
	}
	assert.Greater(t, total, 0.0)
}

func TestPoolRunReducesAcrossWorkers(t *testing.T) {
	orch, g, m := buildOrchestrator(t)
	pool := photon.NewPool(orch, 4357, g.NCells(), len(m.Lambdas), 0, 0)
	pool.NWorkers = 4

	bundle := make([]*photon.Package, 500)
	for i := range bundle {
		bundle[i] = photon.NewLaunched(geom.NewPosition(0, 0, 0), geom.NewDirection(1, 0.1, 0.1), 1, 1.0, uuid.New())
	}

	result := pool.Run(context.Background(), [][]*photon.Package{bundle})
	total := 0.0
	for cell := 0; cell < g.NCells(); cell++ {
		total += result.Absorbed(cell, 1)
	}
	assert.Greater(t, total, 0.0)
}
