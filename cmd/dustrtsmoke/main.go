// Command dustrtsmoke exercises one full launch-propagate-scatter-
// accumulate cycle end to end: a uniform dust box, a single grain
// population loaded from an embedded resource fixture, one bundle of 2000
// photon packages run through the worker pool, and a summary of absorbed
// luminosity written with log.Printf (standard error). It stands in for the external
// configuration-driven CLI driver (out of scope for this core), the way
// muk/muk.go stands in for digest2's own population-model builder.
package main

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/soniakeys/dustrt/dustmix"
	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/grain"
	"github.com/soniakeys/dustrt/grid"
	"github.com/soniakeys/dustrt/nr"
	"github.com/soniakeys/dustrt/photon"
)

const smokeResource = `# smoke-test silicate fixture: 3 sizes, 4 wavelengths
3
4
0.01
0.5 0.9 0.5 0.55
1.0 0.7 0.3 0.50
5.0 0.3 0.1 0.45
10.0 0.1 0.02 0.40
0.1
0.5 0.8 0.6 0.50
1.0 0.6 0.4 0.45
5.0 0.2 0.2 0.40
10.0 0.05 0.05 0.35
1.0
0.5 0.6 0.7 0.45
1.0 0.4 0.5 0.40
5.0 0.1 0.3 0.35
10.0 0.02 0.1 0.30
`

func main() {
	log.SetFlags(0)

	loader := &grain.Loader{RhoBulk: 3000}
	comp, err := loader.Load(strings.NewReader(smokeResource), "smoke-fixture")
	if err != nil {
		log.Fatal(err)
	}

	dist := grain.PowerLaw{AMinV: comp.AMin(), AMaxV: comp.AMax(), C: 1, P: 3.5}
	lambdas := nr.LogGrid(comp.LambdaMin(), comp.LambdaMax(), 6)

	mixture, err := dustmix.New(lambdas, []dustmix.Population{
		{Comp: comp, Dist: dist, NBins: 2},
	})
	if err != nil {
		log.Fatal(err)
	}

	g := geom.UniformBox{Box: geom.Box{
		Min: geom.NewPosition(-1, -1, -1),
		Max: geom.NewPosition(1, 1, 1),
	}}

	const nx = 8
	border := nr.LinGrid(-1, 1, nx+1)
	dustGrid := &grid.Cartesian3D{Xb: border, Yb: border, Zb: border}

	orch := &photon.Orchestrator{Grid: dustGrid, Mixture: mixture}

	pool := photon.NewPool(orch, 4357, dustGrid.NCells(), len(lambdas), 0, 0)
	pool.NWorkers = 4

	const nPackages = 2000
	rnd := nr.NewRandom(4357, 0, 1<<20, 0)
	bundle := make([]*photon.Package, nPackages)
	for i := range bundle {
		pos := g.GeneratePosition(rnd)
		theta, phi := rnd.Direction()
		dir := geom.FromAngles(theta, phi)
		bundle[i] = photon.NewLaunched(pos, dir, len(lambdas)/2, 1.0, uuid.New())
	}

	result := pool.Run(context.Background(), [][]*photon.Package{bundle})

	totalAbsorbed := 0.0
	for cell := 0; cell < dustGrid.NCells(); cell++ {
		totalAbsorbed += result.Absorbed(cell, len(lambdas)/2)
	}
	log.Printf("launched %d packages, absorbed luminosity %.4f, albedo(mid) %.4f",
		nPackages, totalAbsorbed, mixture.Albedo[len(lambdas)/2])
}
