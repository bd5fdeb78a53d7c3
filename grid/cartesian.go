package grid

import (
	"math"

	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/nr"
)

// Cartesian3D is a grid built from three independent 1-D meshes. Flat cell
// number m = k + Nz*j + Nz*Ny*i for mesh indices (i,j,k) along (x,y,z).
type Cartesian3D struct {
	Xb, Yb, Zb nr.Array // Nx+1, Ny+1, Nz+1 border values
}

func (g *Cartesian3D) nx() int { return len(g.Xb) - 1 }
func (g *Cartesian3D) ny() int { return len(g.Yb) - 1 }
func (g *Cartesian3D) nz() int { return len(g.Zb) - 1 }

func (g *Cartesian3D) cellIndex(i, j, k int) int {
	return k + g.nz()*j + g.nz()*g.ny()*i
}

func (g *Cartesian3D) NCells() int { return g.nx() * g.ny() * g.nz() }

func (g *Cartesian3D) Volume(m int) float64 {
	i, j, k := g.split(m)
	return (g.Xb[i+1] - g.Xb[i]) * (g.Yb[j+1] - g.Yb[j]) * (g.Zb[k+1] - g.Zb[k])
}

func (g *Cartesian3D) split(m int) (i, j, k int) {
	nz, ny := g.nz(), g.ny()
	i = m / (nz * ny)
	rem := m % (nz * ny)
	j = rem / nz
	k = rem % nz
	return
}

func (g *Cartesian3D) WhichCell(p geom.Position) int {
	i := nr.Locate(g.Xb, p.X, nr.PolicyFail)
	j := nr.Locate(g.Yb, p.Y, nr.PolicyFail)
	k := nr.Locate(g.Zb, p.Z, nr.PolicyFail)
	if i < 0 || j < 0 || k < 0 || i >= g.nx() || j >= g.ny() || k >= g.nz() {
		return -1
	}
	return g.cellIndex(i, j, k)
}

func (g *Cartesian3D) CentralPosition(m int) geom.Position {
	i, j, k := g.split(m)
	return geom.NewPosition(
		0.5*(g.Xb[i]+g.Xb[i+1]),
		0.5*(g.Yb[j]+g.Yb[j+1]),
		0.5*(g.Zb[k]+g.Zb[k+1]),
	)
}

func (g *Cartesian3D) RandomPosition(m int, r *nr.Random) geom.Position {
	i, j, k := g.split(m)
	x := g.Xb[i] + r.Uniform()*(g.Xb[i+1]-g.Xb[i])
	y := g.Yb[j] + r.Uniform()*(g.Yb[j+1]-g.Yb[j])
	z := g.Zb[k] + r.Uniform()*(g.Zb[k+1]-g.Zb[k])
	return geom.NewPosition(x, y, z)
}

func (g *Cartesian3D) Weight(int) float64 { return 1 }

// minBinWidth returns the smallest bin width across a mesh, used to size
// the entry-nudge epsilon.
func minBinWidth(b nr.Array) float64 {
	min := math.Inf(1)
	for i := 0; i+1 < len(b); i++ {
		if w := b[i+1] - b[i]; w < min {
			min = w
		}
	}
	return min
}

// boxIntersect returns the entry distance along dir to the axis-aligned
// box [lo,hi]^3 from start, and whether the ray actually hits the box
// (ahead of start, or start already inside).
func boxIntersect(start geom.Position, dir geom.Direction, lo, hi [3]float64) (float64, bool) {
	p := [3]float64{start.X, start.Y, start.Z}
	k := [3]float64{dir.X, dir.Y, dir.Z}
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for a := 0; a < 3; a++ {
		if math.Abs(k[a]) < 1e-15 {
			if p[a] < lo[a] || p[a] > hi[a] {
				return 0, false
			}
			continue
		}
		t1 := (lo[a] - p[a]) / k[a]
		t2 := (hi[a] - p[a]) / k[a]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}
	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		tmin = 0
	}
	return tmin, true
}

// Path implements the ray-traversal algorithm of section 4.3: entry-gap
// handling, clip-located starting cell, and a per-axis candidate-wall walk
// with strict x > y > z tie-breaking on simultaneous corner hits.
func (g *Cartesian3D) Path(start geom.Position, dir geom.Direction) Path {
	lo := [3]float64{g.Xb[0], g.Yb[0], g.Zb[0]}
	hi := [3]float64{g.Xb[g.nx()], g.Yb[g.ny()], g.Zb[g.nz()]}

	pos := start
	var path Path

	inside := pos.X >= lo[0] && pos.X <= hi[0] && pos.Y >= lo[1] && pos.Y <= hi[1] && pos.Z >= lo[2] && pos.Z <= hi[2]
	if !inside {
		t, hit := boxIntersect(pos, dir, lo, hi)
		if !hit {
			return nil
		}
		path = append(path, Segment{Cell: -1, Ds: t})
		pos = geom.NewPosition(pos.X+t*dir.X, pos.Y+t*dir.Y, pos.Z+t*dir.Z)
		eps := epsRel * minBinWidth(g.Xb)
		pos = geom.NewPosition(pos.X+eps*dir.X, pos.Y+eps*dir.Y, pos.Z+eps*dir.Z)
	}

	i := nr.Locate(g.Xb, pos.X, nr.PolicyClip)
	j := nr.Locate(g.Yb, pos.Y, nr.PolicyClip)
	k := nr.Locate(g.Zb, pos.Z, nr.PolicyClip)
	if i >= g.nx() {
		i = g.nx() - 1
	}
	if j >= g.ny() {
		j = g.ny() - 1
	}
	if k >= g.nz() {
		k = g.nz() - 1
	}

	kx, ky, kz := dir.X, dir.Y, dir.Z

	for i >= 0 && i < g.nx() && j >= 0 && j < g.ny() && k >= 0 && k < g.nz() {
		dsx := wallDistance(pos.X, kx, g.Xb[i], g.Xb[i+1])
		dsy := wallDistance(pos.Y, ky, g.Yb[j], g.Yb[j+1])
		dsz := wallDistance(pos.Z, kz, g.Zb[k], g.Zb[k+1])

		// x beats y beats z on ties.
		ds := dsx
		axis := 0
		if dsy < ds {
			ds, axis = dsy, 1
		}
		if dsz < ds {
			ds, axis = dsz, 2
		}
		if math.IsInf(ds, 1) {
			break
		}

		cell := g.cellIndex(i, j, k)
		path = append(path, Segment{Cell: cell, Ds: ds})

		nx := pos.X + ds*kx
		ny := pos.Y + ds*ky
		nz := pos.Z + ds*kz
		switch axis {
		case 0:
			if kx >= 0 {
				nx = g.Xb[i+1]
				i++
			} else {
				nx = g.Xb[i]
				i--
			}
		case 1:
			if ky >= 0 {
				ny = g.Yb[j+1]
				j++
			} else {
				ny = g.Yb[j]
				j--
			}
		case 2:
			if kz >= 0 {
				nz = g.Zb[k+1]
				k++
			} else {
				nz = g.Zb[k]
				k--
			}
		}
		pos = geom.NewPosition(nx, ny, nz)
	}
	return path
}

// wallDistance returns the distance to the wall in the direction of
// travel along one axis; +Inf if the ray is parallel to the axis's walls.
func wallDistance(x, k, lo, hi float64) float64 {
	if math.Abs(k) < 1e-15 {
		return math.Inf(1)
	}
	wall := hi
	if k < 0 {
		wall = lo
	}
	ds := (wall - x) / k
	if ds < 0 {
		ds = 0
	}
	return ds
}
