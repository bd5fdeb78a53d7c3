package photon

import (
	"context"
	"runtime"
	"sync"

	"github.com/soniakeys/dustrt/nr"
)

// Pool runs photon-package bundles across a fixed set of long-lived
// worker goroutines, grounded on digest2/digest2.go's dispatcher/worker
// structure (one goroutine per worker, fed by a channel, each owning its
// own Rand stream) combined with pthm-soup/game/parallel.go's
// scratch/reduce shape (each worker owns a private shadow accumulator,
// folded into the shared result at a single-pass barrier).
type Pool struct {
	Orchestrator *Orchestrator
	NWorkers     int
	BaseSeed     uint64
	ProcessRank  int
	ProcessStride int

	NCells, NLambda, NObservers, NPixels int
}

// NewPool builds a pool sized to runtime.GOMAXPROCS(0) workers unless
// NWorkers is set beforehand by the caller.
func NewPool(o *Orchestrator, baseSeed uint64, nCells, nLambda, nObservers, nPixels int) *Pool {
	return &Pool{
		Orchestrator:  o,
		NWorkers:      runtime.GOMAXPROCS(0),
		BaseSeed:      baseSeed,
		ProcessStride: 1 << 20,
		NCells:        nCells,
		NLambda:       nLambda,
		NObservers:    nObservers,
		NPixels:       nPixels,
	}
}

// Run dispatches the given bundles (each a slice of freshly launched
// packages) across the pool's workers and returns the reduced
// accumulator. Cooperative cancellation is checked between bundles, never
// inside one, matching section 5's "no suspension points in the photon
// loop."
func (p *Pool) Run(ctx context.Context, bundles [][]*Package) *Accumulator {
	n := p.NWorkers
	if n < 1 {
		n = 1
	}
	work := make(chan []*Package, n*2)
	shadows := make([]*Accumulator, n)
	var wg sync.WaitGroup

	for w := 0; w < n; w++ {
		shadows[w] = NewAccumulator(p.NCells, p.NLambda, p.NObservers, p.NPixels)
		wg.Add(1)
		go func(workerIndex int) {
			defer wg.Done()
			rnd := nr.NewRandom(p.BaseSeed, p.ProcessRank, p.ProcessStride, workerIndex)
			acc := shadows[workerIndex]
			for bundle := range work {
				select {
				case <-ctx.Done():
					continue
				default:
				}
				for _, pkg := range bundle {
					p.Orchestrator.RunBundle(pkg, rnd, acc)
				}
			}
		}(w)
	}

	go func() {
		for _, b := range bundles {
			select {
			case <-ctx.Done():
			case work <- b:
			}
			if ctx.Err() != nil {
				break
			}
		}
		close(work)
	}()

	wg.Wait()

	result := NewAccumulator(p.NCells, p.NLambda, p.NObservers, p.NPixels)
	for _, s := range shadows {
		result.Reduce(s)
	}
	return result
}
