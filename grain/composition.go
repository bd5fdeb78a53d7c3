package grain

import (
	"github.com/soniakeys/dustrt/nr"
)

// Composition is a tabulated grain optical-property set: Qabs, Qsca and
// the Henyey-Greenstein asymmetry g, each as a function of wavelength and
// grain radius, as loaded from a resource file (see Loader).
type Composition struct {
	Name    string
	RhoBulk float64 // bulk mass density, kg/m^3

	ASizes  nr.Array // ascending, meters
	Lambdas nr.Array // ascending, meters

	Qabs *nr.Table2 // [size index][lambda index]
	Qsca *nr.Table2
	G    *nr.Table2

	// Sxx holds the per-(a,lambda) scattering-angle Mueller Sxx table when
	// polarization data was loaded (see LoadStokes); nil otherwise.
	Sxx     *nr.Table4 // [size][lambda][theta] flattened via D2=len(Theta)
	Theta   nr.Array
}

func (c *Composition) LambdaMin() float64 { return c.Lambdas[0] }
func (c *Composition) LambdaMax() float64 { return c.Lambdas[len(c.Lambdas)-1] }
func (c *Composition) AMin() float64      { return c.ASizes[0] }
func (c *Composition) AMax() float64      { return c.ASizes[len(c.ASizes)-1] }

// sizeRowInterp interpolates a quantity tabulated in (size, lambda) at an
// arbitrary lambda for each of the two bracketing tabulated sizes, then
// interpolates linearly in size between them; this is the standard
// shape of a 2-D resource-table lookup used throughout section 4.4's
// mixture setup.
func (c *Composition) sizeRowInterp(table *nr.Table2, a, lambda float64, kind nr.Kind) float64 {
	i := nr.Locate(c.ASizes, a, nr.PolicyClip)
	if i >= len(c.ASizes)-1 {
		i = len(c.ASizes) - 2
	}
	if i < 0 {
		i = 0
	}
	row0 := nr.Array(table.Row(i))
	row1 := nr.Array(table.Row(i + 1))
	q0 := nr.Resample(kind, c.Lambdas, row0, nr.Array{lambda})[0]
	q1 := nr.Resample(kind, c.Lambdas, row1, nr.Array{lambda})[0]
	a0, a1 := c.ASizes[i], c.ASizes[i+1]
	if a1 == a0 {
		return q0
	}
	frac := (a - a0) / (a1 - a0)
	return q0 + frac*(q1-q0)
}

// Qabsolute returns the absorption efficiency at the given wavelength and
// grain radius, log-log interpolated in wavelength, linearly in size.
func (c *Composition) Qabsolute(lambda, a float64) float64 {
	return c.sizeRowInterp(c.Qabs, a, lambda, nr.LogLog)
}

func (c *Composition) Qscattering(lambda, a float64) float64 {
	return c.sizeRowInterp(c.Qsca, a, lambda, nr.LogLog)
}

func (c *Composition) Asymmetry(lambda, a float64) float64 {
	return c.sizeRowInterp(c.G, a, lambda, nr.LogLin)
}
