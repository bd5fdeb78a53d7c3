// Package photon implements the photon-package state machine and the
// orchestrator that drives launch, propagation, scattering and peel-off,
// per section 4.5.
package photon

import (
	"github.com/google/uuid"

	"github.com/soniakeys/dustrt/geom"
)

// State is a photon package's lifecycle stage.
type State int

const (
	Launched State = iota
	Propagating
	Interacting
	PeelOff
	Terminated
)

func (s State) String() string {
	switch s {
	case Launched:
		return "launched"
	case Propagating:
		return "propagating"
	case Interacting:
		return "interacting"
	case PeelOff:
		return "peel-off"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Anisotropy refers to the emitting geometry through its geom.Geometry
// interface value, whose PDir weights peel-off; it does not copy the
// emission shape's parameters inline into the package.
type Anisotropy struct {
	Present bool
	Origin  geom.Geometry // nil when Present is false
}

// Package is one photon package: position, direction, previous direction
// (cached for peel-off), wavelength-grid index, luminosity, scattering
// count, an optional origin tag for traceability, and the optional
// anisotropic-emission reference carried from launch.
type Package struct {
	Pos     geom.Position
	Dir     geom.Direction
	PrevDir geom.Direction

	Lambda int // wavelength-grid index
	Lum    float64
	NScat  int

	Origin uuid.UUID
	Aniso  Anisotropy

	State State
}

// NewLaunched builds a freshly launched package. Origin identifies the
// launching component (a geometry, a dust cell) for peel-off traceability.
func NewLaunched(pos geom.Position, dir geom.Direction, lambda int, lum float64, origin uuid.UUID) *Package {
	return &Package{
		Pos:    pos,
		Dir:    dir,
		Lambda: lambda,
		Lum:    lum,
		Origin: origin,
		State:  Launched,
	}
}

// Propagate advances the package to ds along its current direction and
// marks it Propagating.
func (p *Package) Propagate(ds float64) {
	p.Pos = geom.NewPosition(
		p.Pos.X+ds*p.Dir.X,
		p.Pos.Y+ds*p.Dir.Y,
		p.Pos.Z+ds*p.Dir.Z,
	)
	p.State = Propagating
}

// Scatter reassigns the direction, caches the previous one, increments the
// scattering count, and marks the package Interacting.
func (p *Package) Scatter(newDir geom.Direction) {
	p.PrevDir = p.Dir
	p.Dir = newDir
	p.NScat++
	p.State = Interacting
}

// Terminate marks the package as having left the grid or lost its energy
// budget.
func (p *Package) Terminate() {
	p.State = Terminated
}

// PeelOffCopy builds a scaled virtual copy directed at an observer. The
// copy never recurses into further scattering: its state is always
// PeelOff and it carries no further lifecycle.
func (p *Package) PeelOffCopy(dirToObserver geom.Direction, probability float64) *Package {
	cp := *p
	cp.Dir = dirToObserver
	cp.Lum = p.Lum * probability
	cp.State = PeelOff
	return &cp
}
