package grid

import (
	"math"

	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/nr"
)

// Spherical1D is a spherically symmetric mesh built from a single family of
// radii; cell m spans [Rb[m], Rb[m+1]).
type Spherical1D struct {
	Rb nr.Array
}

func (g *Spherical1D) n() int       { return len(g.Rb) - 1 }
func (g *Spherical1D) NCells() int  { return g.n() }
func (g *Spherical1D) Weight(int) float64 { return 1 }

func (g *Spherical1D) Volume(m int) float64 {
	r0, r1 := g.Rb[m], g.Rb[m+1]
	return (4.0 / 3.0) * math.Pi * (r1*r1*r1 - r0*r0*r0)
}

func (g *Spherical1D) WhichCell(p geom.Position) int {
	r := p.R()
	i := nr.Locate(g.Rb, r, nr.PolicyFail)
	if i < 0 || i >= g.n() {
		return -1
	}
	return i
}

func (g *Spherical1D) CentralPosition(m int) geom.Position {
	rc := 0.5 * (g.Rb[m] + g.Rb[m+1])
	return geom.NewPosition(rc, 0, 0)
}

func (g *Spherical1D) RandomPosition(m int, r *nr.Random) geom.Position {
	r0, r1 := g.Rb[m], g.Rb[m+1]
	u := r.Uniform()
	rad := math.Cbrt(u*(r1*r1*r1-r0*r0*r0) + r0*r0*r0)
	theta, phi := r.Direction()
	d := geom.FromAngles(theta, phi)
	return geom.NewPosition(rad*d.X, rad*d.Y, rad*d.Z)
}

// Path implements the two-monotonic-pass traversal of section 4.3:
// decreasing-radius segments down to the closest approach, then
// increasing-radius segments out to the grid boundary. A ray tangent to
// the outer boundary (within eps of Rmax) returns an empty path.
func (g *Spherical1D) Path(start geom.Position, dir geom.Direction) Path {
	b := start.X*dir.X + start.Y*dir.Y + start.Z*dir.Z
	c := start.X*start.X + start.Y*start.Y + start.Z*start.Z
	rmax := g.Rb[g.n()]
	eps := epsRel * rmax

	tca := -b
	rca2 := c - b*b
	if rca2 < 0 {
		rca2 = 0
	}
	rca := math.Sqrt(rca2)

	var path Path
	var t float64
	n := g.n()
	var i int

	if c > rmax*rmax {
		disc := b*b - (c - rmax*rmax)
		if disc <= eps*eps {
			return nil // miss, or tangent to the outer boundary
		}
		sq := math.Sqrt(disc)
		tEntry := -b - sq
		if tEntry < 0 {
			return nil // moving away from the grid
		}
		path = append(path, Segment{Cell: -1, Ds: tEntry})
		t = tEntry + eps
		rAtT := math.Sqrt(math.Max(0, c+2*b*t+t*t))
		i = nr.Locate(g.Rb, rAtT, nr.PolicyClip)
	} else {
		t = 0
		r0 := math.Sqrt(c)
		i = nr.Locate(g.Rb, r0, nr.PolicyClip)
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}

	phase := "inward"
	if t >= tca {
		phase = "outward"
	}

	for guard := 0; guard < 4*n+4; guard++ {
		if phase == "inward" {
			if i == 0 || g.Rb[i] <= rca {
				ds := tca - t
				if ds > 1e-15 {
					path = append(path, Segment{Cell: i, Ds: ds})
				}
				t = tca
				phase = "outward"
				continue
			}
			disc := b*b - (c - g.Rb[i]*g.Rb[i])
			if disc < 0 {
				disc = 0
			}
			root := -b - math.Sqrt(disc)
			ds := root - t
			path = append(path, Segment{Cell: i, Ds: ds})
			t = root
			i--
		} else {
			if i >= n {
				break
			}
			router := g.Rb[i+1]
			disc := b*b - (c - router*router)
			if disc < 0 {
				disc = 0
			}
			root := -b + math.Sqrt(disc)
			ds := root - t
			path = append(path, Segment{Cell: i, Ds: ds})
			t = root
			i++
			if i >= n {
				break
			}
		}
	}
	return path
}
