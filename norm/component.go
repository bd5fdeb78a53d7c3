package norm

import (
	"github.com/soniakeys/dustrt/dustmix"
	"github.com/soniakeys/dustrt/geom"
)

// Component binds a geometry, a dust mixture and a normalization rule
// into a mass-scaled dust component whose density is rho_geom times the
// rule's resolved multiplier, per section 3's DustComp.
type Component struct {
	Geometry geom.Geometry
	Mixture  *dustmix.Mixture
	nf       float64
}

// NewComponent resolves rule against geometry and mixture at the given
// wavelength-grid index and freezes the resulting multiplier.
func NewComponent(g geom.Geometry, m *dustmix.Mixture, rule Rule, lambda int) (*Component, error) {
	nf, err := rule.Apply(g, m, lambda)
	if err != nil {
		return nil, err
	}
	return &Component{Geometry: g, Mixture: m, nf: nf}, nil
}

// Density returns rho_geom(p) * nf, the component's mass-scaled density.
func (c *Component) Density(p geom.Position) float64 {
	return c.Geometry.Density(p) * c.nf
}

// NormalizationFactor returns the frozen multiplier nf.
func (c *Component) NormalizationFactor() float64 { return c.nf }
