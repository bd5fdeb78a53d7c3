// Package grid implements the spatial dust-grid catalog: the DustGrid
// contract shared by the Cartesian, cylindrical-2D, spherical-2D and
// spherical-1D meshes, their ray-traversal ("path") algorithms, and the
// two-phase clumping decorator.
package grid

import (
	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/nr"
)

// Segment is one leg of a traversed path: Cell is the flat cell index the
// ray occupied for this leg (-1 for the gap before the ray enters the
// grid), and Ds is the leg's length.
type Segment struct {
	Cell int
	Ds   float64
}

// Path is the ordered list of (cell, length) legs a ray crosses.
type Path []Segment

// TotalLength sums all segment lengths, tagged or not.
func (p Path) TotalLength() float64 {
	sum := 0.0
	for _, s := range p {
		sum += s.Ds
	}
	return sum
}

// TaggedLength sums only the segments belonging to real cells (Cell >= 0).
func (p Path) TaggedLength() float64 {
	sum := 0.0
	for _, s := range p {
		if s.Cell >= 0 {
			sum += s.Ds
		}
	}
	return sum
}

// DustGrid is the contract every spatial mesh implements, per section 4.3.
type DustGrid interface {
	NCells() int
	Volume(m int) float64
	WhichCell(p geom.Position) int
	CentralPosition(m int) geom.Position
	RandomPosition(m int, r *nr.Random) geom.Position
	Path(start geom.Position, dir geom.Direction) Path
	// Weight returns the per-cell density multiplier used by the
	// two-phase decorator; grids that do not support clumping answer 1.
	Weight(m int) float64
}

const epsRel = 1e-11
