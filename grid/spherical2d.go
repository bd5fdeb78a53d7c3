package grid

import (
	"log"
	"math"
	"sort"

	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/nr"
)

// Spherical2D is a mesh of spherical wedges bounded by radii {Rb} and
// polar angles {Thb} (0 at the +z pole, pi at the -z pole). The equatorial
// plane (theta = pi/2) is always present as an explicit border, inserted
// by NewSpherical2D if the caller's mesh omits it.
type Spherical2D struct {
	Rb  nr.Array
	Thb nr.Array // ascending, Thb[0]=0, Thb[last]=pi
}

// NewSpherical2D inserts pi/2 into thb if it is not already present
// (within floating tolerance), per section 4.3's explicit requirement.
func NewSpherical2D(rb, thb nr.Array) *Spherical2D {
	has := false
	for _, th := range thb {
		if math.Abs(th-math.Pi/2) < 1e-9 {
			has = true
			break
		}
	}
	out := make(nr.Array, len(thb))
	copy(out, thb)
	if !has {
		out = append(out, math.Pi/2)
		sort.Float64s(out)
	}
	return &Spherical2D{Rb: rb, Thb: out}
}

func (g *Spherical2D) nR() int  { return len(g.Rb) - 1 }
func (g *Spherical2D) nTh() int { return len(g.Thb) - 1 }

func (g *Spherical2D) NCells() int        { return g.nR() * g.nTh() }
func (g *Spherical2D) Weight(int) float64 { return 1 }

func (g *Spherical2D) split(m int) (i, k int) {
	nth := g.nTh()
	return m / nth, m % nth
}
func (g *Spherical2D) cellIndex(i, k int) int { return k + g.nTh()*i }

func (g *Spherical2D) Volume(m int) float64 {
	i, k := g.split(m)
	r0, r1 := g.Rb[i], g.Rb[i+1]
	return (2 * math.Pi / 3) * (r1*r1*r1 - r0*r0*r0) * (math.Cos(g.Thb[k]) - math.Cos(g.Thb[k+1]))
}

func (g *Spherical2D) WhichCell(p geom.Position) int {
	r, theta, _ := p.Sph()
	i := nr.Locate(g.Rb, r, nr.PolicyFail)
	k := nr.Locate(g.Thb, theta, nr.PolicyFail)
	if i < 0 || k < 0 || i >= g.nR() || k >= g.nTh() {
		return -1
	}
	return g.cellIndex(i, k)
}

func (g *Spherical2D) CentralPosition(m int) geom.Position {
	i, k := g.split(m)
	rc := 0.5 * (g.Rb[i] + g.Rb[i+1])
	thc := 0.5 * (g.Thb[k] + g.Thb[k+1])
	return geom.NewPosition(rc*math.Sin(thc), 0, rc*math.Cos(thc))
}

func (g *Spherical2D) RandomPosition(m int, r *nr.Random) geom.Position {
	i, k := g.split(m)
	r0, r1 := g.Rb[i], g.Rb[i+1]
	u := r.Uniform()
	rad := math.Cbrt(u*(r1*r1*r1-r0*r0*r0) + r0*r0*r0)
	mu0, mu1 := math.Cos(g.Thb[k]), math.Cos(g.Thb[k+1])
	mu := mu1 + r.Uniform()*(mu0-mu1)
	theta := math.Acos(mu)
	phi := 2 * math.Pi * r.Uniform()
	return geom.NewPosition(rad*math.Sin(theta)*math.Cos(phi), rad*math.Sin(theta)*math.Sin(phi), rad*math.Cos(theta))
}

// coneDistance returns the smallest ds > 0 at which the ray from pos along
// dir crosses the cone cos(theta)=mu0 on the nappe matching mu0's sign
// (mu0==0 is the equatorial plane, handled as the linear special case).
func coneDistance(pos geom.Position, dir geom.Direction, mu0 float64) float64 {
	if math.Abs(mu0) < 1e-12 {
		if math.Abs(dir.Z) < 1e-20 {
			return math.Inf(1)
		}
		ds := -pos.Z / dir.Z
		if ds <= 1e-15 {
			return math.Inf(1)
		}
		return ds
	}
	m2 := mu0 * mu0
	a := (1-m2)*dir.Z*dir.Z - m2*(dir.X*dir.X+dir.Y*dir.Y)
	b := 2 * ((1-m2)*pos.Z*dir.Z - m2*(pos.X*dir.X+pos.Y*dir.Y))
	c := (1-m2)*pos.Z*pos.Z - m2*(pos.X*pos.X+pos.Y*pos.Y)
	t1, t2, ok := quadRoots(a, b, c)
	if !ok {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for _, t := range []float64{t1, t2} {
		if t <= 1e-12 {
			continue
		}
		z := pos.Z + t*dir.Z
		if z*mu0 < 0 {
			continue // wrong nappe
		}
		if t < best {
			best = t
		}
	}
	return best
}

// Path traverses the radial family with the same two-pass closest-approach
// walk as Spherical1D, and at each step also tests the two bounding cones
// of the current theta bin, advancing along whichever of the (up to three)
// candidate walls is nearer, per section 4.3. eps-nudges of 1e-11*rmax
// prevent stalls; a step that fails to advance past any wall nudges the
// position forward by eps rather than looping indefinitely.
func (g *Spherical2D) Path(start geom.Position, dir geom.Direction) Path {
	b := start.X*dir.X + start.Y*dir.Y + start.Z*dir.Z
	c := start.X*start.X + start.Y*start.Y + start.Z*start.Z
	nR, nTh := g.nR(), g.nTh()
	rmax := g.Rb[nR]
	eps := epsRel * rmax

	tca := -b
	rca2 := c - b*b
	if rca2 < 0 {
		rca2 = 0
	}
	rca := math.Sqrt(rca2)

	var path Path
	var t float64
	var i int

	if c > rmax*rmax {
		disc := b*b - (c - rmax*rmax)
		if disc <= eps*eps {
			return nil
		}
		sq := math.Sqrt(disc)
		tEntry := -b - sq
		if tEntry < 0 {
			return nil
		}
		path = append(path, Segment{Cell: -1, Ds: tEntry})
		t = tEntry + eps
		i = g.nR() - 1
	} else {
		t = 0
		r0 := math.Sqrt(c)
		i = nr.Locate(g.Rb, r0, nr.PolicyClip)
	}
	if i < 0 {
		i = 0
	}
	if i >= nR {
		i = nR - 1
	}

	pos := geom.NewPosition(start.X+t*dir.X, start.Y+t*dir.Y, start.Z+t*dir.Z)
	_, theta0, _ := pos.Sph()
	k := nr.Locate(g.Thb, theta0, nr.PolicyClip)
	if k < 0 {
		k = 0
	}
	if k >= nTh {
		k = nTh - 1
	}

	phase := "inward"
	if t >= tca {
		phase = "outward"
	}

	for guard := 0; guard < 8*(nR+nTh)+16; guard++ {
		if i < 0 || i >= nR || k < 0 || k >= nTh {
			break
		}
		var dsR float64
		turning := false
		if phase == "inward" {
			if i == 0 || g.Rb[i] <= rca {
				dsR = tca - t
				if dsR < 0 {
					dsR = 0
				}
				turning = true
			} else {
				disc := b*b - (c - g.Rb[i]*g.Rb[i])
				if disc < 0 {
					disc = 0
				}
				root := -b - math.Sqrt(disc)
				dsR = root - t
			}
		} else {
			router := g.Rb[i+1]
			disc := b*b - (c - router*router)
			if disc < 0 {
				disc = 0
			}
			root := -b + math.Sqrt(disc)
			dsR = root - t
		}
		if dsR < 0 {
			dsR = 0
		}

		dsLo := coneDistance(pos, dir, math.Cos(g.Thb[k+1]))
		dsHi := coneDistance(pos, dir, math.Cos(g.Thb[k]))

		ds := dsR
		event := "r"
		if dsLo < ds {
			ds, event = dsLo, "lo"
		}
		if dsHi < ds {
			ds, event = dsHi, "hi"
		}
		if math.IsInf(ds, 1) {
			// stall: log a warning and advance by eps to guarantee progress.
			log.Printf("grid: Spherical2D path found no wall ahead at t=%g; nudging by %g", t, eps)
			ds = eps
			event = "nudge"
		}

		cell := g.cellIndex(i, k)
		path = append(path, Segment{Cell: cell, Ds: ds})
		t += ds
		pos = geom.NewPosition(pos.X+ds*dir.X, pos.Y+ds*dir.Y, pos.Z+ds*dir.Z)

		switch event {
		case "r":
			if phase == "inward" {
				i--
			} else {
				i++
			}
		case "lo", "hi":
			_, thetaNow, _ := pos.Sph()
			nk := nr.Locate(g.Thb, thetaNow, nr.PolicyClip)
			if nk < 0 {
				nk = 0
			}
			if nk >= nTh {
				nk = nTh - 1
			}
			if nk == k {
				// numerical tie at the wall; nudge to the expected neighbor.
				if event == "lo" {
					nk = k + 1
				} else {
					nk = k - 1
				}
			}
			k = nk
		}
		if turning && event == "r" {
			phase = "outward"
		}
	}
	return path
}
