package grid

import (
	"math"

	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/nr"
)

// Cylindrical2D is an axisymmetric mesh of toroidal annular cells bounded
// by cylindrical radii {Rb} and heights {Zb}; m = k + Nz*i for R-index i,
// z-index k.
type Cylindrical2D struct {
	Rb, Zb nr.Array
}

func (g *Cylindrical2D) nr_() int { return len(g.Rb) - 1 }
func (g *Cylindrical2D) nz() int  { return len(g.Zb) - 1 }

func (g *Cylindrical2D) NCells() int      { return g.nr_() * g.nz() }
func (g *Cylindrical2D) Weight(int) float64 { return 1 }

func (g *Cylindrical2D) split(m int) (i, k int) {
	nz := g.nz()
	return m / nz, m % nz
}

func (g *Cylindrical2D) cellIndex(i, k int) int { return k + g.nz()*i }

func (g *Cylindrical2D) Volume(m int) float64 {
	i, k := g.split(m)
	return math.Pi * (g.Rb[i+1]*g.Rb[i+1] - g.Rb[i]*g.Rb[i]) * (g.Zb[k+1] - g.Zb[k])
}

func (g *Cylindrical2D) WhichCell(p geom.Position) int {
	R, _, z := p.Cyl()
	i := nr.Locate(g.Rb, R, nr.PolicyFail)
	k := nr.Locate(g.Zb, z, nr.PolicyFail)
	if i < 0 || k < 0 || i >= g.nr_() || k >= g.nz() {
		return -1
	}
	return g.cellIndex(i, k)
}

func (g *Cylindrical2D) CentralPosition(m int) geom.Position {
	i, k := g.split(m)
	Rc := 0.5 * (g.Rb[i] + g.Rb[i+1])
	zc := 0.5 * (g.Zb[k] + g.Zb[k+1])
	return geom.NewPosition(Rc, 0, zc)
}

func (g *Cylindrical2D) RandomPosition(m int, r *nr.Random) geom.Position {
	i, k := g.split(m)
	r0, r1 := g.Rb[i], g.Rb[i+1]
	u := r.Uniform()
	R := math.Sqrt(u*(r1*r1-r0*r0) + r0*r0)
	phi := 2 * math.Pi * r.Uniform()
	z := g.Zb[k] + r.Uniform()*(g.Zb[k+1]-g.Zb[k])
	return geom.NewPosition(R*math.Cos(phi), R*math.Sin(phi), z)
}

// Path traverses in (R, z): the R coordinate follows the same two-pass
// closest-approach walk as Spherical1D (using the xy-projected quadratic),
// interleaved step-by-step with the independent linear z-wall crossings,
// taking whichever wall is nearer at each step, per section 4.3.
func (g *Cylindrical2D) Path(start geom.Position, dir geom.Direction) Path {
	kxy2 := dir.X*dir.X + dir.Y*dir.Y
	bxy := start.X*dir.X + start.Y*dir.Y
	cxy := start.X*start.X + start.Y*start.Y
	kz := dir.Z
	if math.Abs(kz) < 1e-20 {
		kz = math.Copysign(1e-20, kz)
	}
	if kxy2 < 1e-40 {
		kxy2 = 1e-40
	}

	nR, nZ := g.nr_(), g.nz()
	rmax := g.Rb[nR]
	zmin, zmax := g.Zb[0], g.Zb[nZ]

	// closest xy-approach
	tca := -bxy / kxy2
	rca2 := cxy - bxy*bxy/kxy2
	if rca2 < 0 {
		rca2 = 0
	}
	rca := math.Sqrt(rca2)

	R0 := math.Sqrt(cxy)
	inside := R0 <= rmax && start.Z >= zmin && start.Z <= zmax

	var path Path
	var t float64
	if !inside {
		tNear, tFar, ok := quadRoots(kxy2, 2*bxy, cxy-rmax*rmax)
		tEntryR := math.Inf(1)
		if ok && tFar >= 0 {
			if tNear >= 0 {
				tEntryR = tNear
			} else {
				tEntryR = 0
			}
		}
		var tEntryZ float64 = 0
		if start.Z < zmin {
			tEntryZ = (zmin - start.Z) / dir.Z
		} else if start.Z > zmax {
			tEntryZ = (zmax - start.Z) / dir.Z
		}
		tEntry := math.Max(tEntryR, tEntryZ)
		if math.IsInf(tEntry, 1) || tEntry < 0 {
			return nil
		}
		// verify the candidate entry point actually lies within the box
		ex, ey := start.X+tEntry*dir.X, start.Y+tEntry*dir.Y
		ez := start.Z + tEntry*dir.Z
		eR := math.Hypot(ex, ey)
		if eR > rmax+1e-9 || ez < zmin-1e-9 || ez > zmax+1e-9 {
			return nil
		}
		path = append(path, Segment{Cell: -1, Ds: tEntry})
		t = tEntry + epsRel*minBinWidth(g.Rb)
	}

	pz := start.Z + t*dir.Z
	pR := math.Sqrt(math.Max(0, cxy+2*bxy*t+kxy2*t*t))
	i := nr.Locate(g.Rb, pR, nr.PolicyClip)
	k := nr.Locate(g.Zb, pz, nr.PolicyClip)
	if i < 0 {
		i = 0
	}
	if i >= nR {
		i = nR - 1
	}
	if k < 0 {
		k = 0
	}
	if k >= nZ {
		k = nZ - 1
	}

	phase := "inward"
	if t >= tca {
		phase = "outward"
	}

	for guard := 0; guard < 4*(nR+nZ)+8; guard++ {
		if i < 0 || i >= nR || k < 0 || k >= nZ {
			break
		}
		// candidate R-wall distance
		var dsR float64
		if phase == "inward" {
			if i == 0 || g.Rb[i] <= rca {
				dsR = tca - t
				if dsR < 0 {
					dsR = 0
				}
			} else {
				disc := bxy*bxy - kxy2*(cxy-g.Rb[i]*g.Rb[i])
				if disc < 0 {
					disc = 0
				}
				root := (-bxy - math.Sqrt(disc)) / kxy2
				dsR = root - t
			}
		} else {
			if i >= nR-1 {
				// exiting the grid outward on next R crossing; compute
				// distance to the outer boundary directly.
				disc := bxy*bxy - kxy2*(cxy-g.Rb[nR]*g.Rb[nR])
				if disc < 0 {
					disc = 0
				}
				root := (-bxy + math.Sqrt(disc)) / kxy2
				dsR = root - t
			} else {
				disc := bxy*bxy - kxy2*(cxy-g.Rb[i+1]*g.Rb[i+1])
				if disc < 0 {
					disc = 0
				}
				root := (-bxy + math.Sqrt(disc)) / kxy2
				dsR = root - t
			}
		}
		if dsR < 0 {
			dsR = 0
		}

		dsZ := wallDistance(pz, dir.Z, g.Zb[k], g.Zb[k+1])

		cell := g.cellIndex(i, k)
		if dsR <= dsZ {
			ds := dsR
			path = append(path, Segment{Cell: cell, Ds: ds})
			t += ds
			pz += ds * dir.Z
			if phase == "inward" && (i == 0 || g.Rb[i] <= rca) && t >= tca-1e-12 {
				phase = "outward"
				// i unchanged: this is the turning-point half-segment
			} else if phase == "inward" {
				i--
			} else {
				i++
			}
		} else {
			ds := dsZ
			path = append(path, Segment{Cell: cell, Ds: ds})
			t += ds
			pz += ds * dir.Z
			if dir.Z >= 0 {
				k++
			} else {
				k--
			}
		}
	}
	return path
}
