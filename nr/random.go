package nr

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Random is a single worker's PRNG stream.
//
// The stream itself is a PCG generator, but the *seeding* is the part that
// matters for reproducibility: NewRandom implements the striping rule from
// section 5 -- a base seed is offset by the process rank times a fixed
// stride, then by the worker index, so a fixed (process count, thread
// count) always reproduces the same per-worker streams regardless of which
// worker happens to finish first. This generalizes the teacher's lcgRand in
// digest2/digest2.go, which plays the same role (an injectable Rand stream
// handed to one worker goroutine at a time) but used a fixed LCG instead of
// a seed-striping scheme across processes.
type Random struct {
	src    *rand.PCG
	normal distuv.Normal
	expo   distuv.Exponential
}

// NewRandom builds the PRNG stream for one worker.
//
// seed = baseSeed + processRank*processStride + workerIndex, per section
// 4.1/5's reproducibility rule.
func NewRandom(baseSeed uint64, processRank, processStride, workerIndex int) *Random {
	seed := baseSeed + uint64(processRank)*uint64(processStride) + uint64(workerIndex)
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	r := &Random{src: src}
	r.normal = distuv.Normal{Mu: 0, Sigma: 1, Src: pcgSource64{src}}
	r.expo = distuv.Exponential{Rate: 1, Src: pcgSource64{src}}
	return r
}

// pcgSource64 adapts *rand.PCG (math/rand/v2, no Int63/Seed methods) to the
// math/rand.Source64 interface gonum's distuv package expects.
type pcgSource64 struct{ p *rand.PCG }

func (s pcgSource64) Uint64() uint64 { return s.p.Uint64() }
func (s pcgSource64) Int63() int64   { return int64(s.p.Uint64() >> 1) }
func (s pcgSource64) Seed(int64)     {} // reseeding mid-stream would break reproducibility; no-op

// Uniform returns a uniform deviate in [0,1).
func (r *Random) Uniform() float64 {
	return float64(r.src.Uint64()>>11) / (1 << 53)
}

// Gaussian returns a standard-normal deviate.
func (r *Random) Gaussian() float64 { return r.normal.Rand() }

// Exponential returns a deviate from the unit exponential distribution.
func (r *Random) Exponential() float64 { return r.expo.Rand() }

// ExponentialCutoff samples from an exponential distribution truncated to
// [0, cutoff] by inverting the truncated CDF, F(x) = (1-e^-x)/(1-e^-cutoff).
func (r *Random) ExponentialCutoff(cutoff float64) float64 {
	u := r.Uniform()
	return -math.Log(1 - u*(1-math.Exp(-cutoff)))
}

// Direction returns a uniformly distributed unit direction (theta, phi).
func (r *Random) Direction() (theta, phi float64) {
	theta = math.Acos(2*r.Uniform() - 1)
	phi = 2 * math.Pi * r.Uniform()
	return
}

// CosineDirection returns a cosine-weighted unit direction about the local
// normal, theta = acos(+-sqrt(X1)), the sign drawn by a second uniform.
func (r *Random) CosineDirection() (theta, phi float64) {
	theta = math.Acos(math.Sqrt(r.Uniform()))
	if r.Uniform() < 0.5 {
		theta = math.Pi - theta
	}
	phi = 2 * math.Pi * r.Uniform()
	return
}

// PositionInBox returns a uniformly distributed point within [lo,hi]^3.
func (r *Random) PositionInBox(lo, hi [3]float64) [3]float64 {
	var p [3]float64
	for i := range p {
		p[i] = lo[i] + r.Uniform()*(hi[i]-lo[i])
	}
	return p
}

// SampleCDF draws one value from c using this stream's uniform deviate.
func (r *Random) SampleCDF(c *CDF) float64 { return c.Sample(r.Uniform()) }
