package geom

import (
	"math"

	"github.com/soniakeys/dustrt/nr"
)

// ExponentialDisk is rho(R,z) = rho0 * exp(-R/hR) * exp(-|z|/hz), the
// separable disk density used in the worked example (spec section 8,
// scenario 3): rho0 = 1/(4 pi hR^2 hz) normalizes the total mass to unity,
// and Sigma_R works out to rho0*hR = 1/(4 pi hR hz).
type ExponentialDisk struct {
	isotropic
	HR, Hz float64
}

func (g ExponentialDisk) Dimension() Dim { return Dim2 }

func (g ExponentialDisk) rho0() float64 {
	return 1 / (4 * math.Pi * g.HR * g.HR * g.Hz)
}

func (g ExponentialDisk) DensityRz(R, z float64) float64 {
	return g.rho0() * math.Exp(-R/g.HR) * math.Exp(-math.Abs(z)/g.Hz)
}

func (g ExponentialDisk) Density(p Position) float64 {
	R, _, z := p.Cyl()
	return g.DensityRz(R, z)
}

// SampleR inverts the radial CDF of a Rayleigh-like exponential disk,
// p(R) dR ~ R exp(-R/hR) dR, using the standard Gamma(2,hR) sampling trick
// via the sum of two unit-exponential deviates.
func (g ExponentialDisk) SampleR(r *nr.Random) float64 {
	return g.HR * (r.Exponential() + r.Exponential())
}

// SampleZ draws z from the two-sided exponential p(z) ~ exp(-|z|/hz)/2 by
// sampling the magnitude from a unit exponential and a random sign.
func (g ExponentialDisk) SampleZ(r *nr.Random) float64 {
	z := g.Hz * r.Exponential()
	if r.Uniform() < 0.5 {
		z = -z
	}
	return z
}

func (g ExponentialDisk) GeneratePosition(r *nr.Random) Position {
	R := g.SampleR(r)
	z := g.SampleZ(r)
	phi := 2 * math.Pi * r.Uniform()
	return NewPosition(R*math.Cos(phi), R*math.Sin(phi), z)
}

// SigmaR is the edge-on column through the disk center, Sigma_R = rho0 *
// integral_0^inf exp(-R/hR) dR = rho0 * hR = 1/(4 pi hR hz); this matches
// BrokenExpDiskGeometry.cpp's rho0/SigmaR relationship in the original
// source with the radial scale collapsed to a single exponential (IR =
// hR^2, SigmaR = rho0*hR).
func (g ExponentialDisk) SigmaR() float64 {
	return g.rho0() * g.HR
}

// SigmaZ is the face-on column through the disk center (R=0), integrated
// over all z: Sigma_Z = rho0 * 2 hz = 1/(2 pi hR^2).
func (g ExponentialDisk) SigmaZ() float64 {
	return g.rho0() * 2 * g.Hz
}

// SigmaX and SigmaY are the Cartesian-axis columns through the center at
// z=0, i.e. twice the radial integral weighted by the z=0 value of the
// vertical profile (which is exp(0)=1).
func (g ExponentialDisk) SigmaX() float64 { return 2 * g.SigmaR() }
func (g ExponentialDisk) SigmaY() float64 { return 2 * g.SigmaR() }

// DoubleExponentialDisk adds a second vertical scale height component with
// weight fraction f in the thin disk, (1-f) in the thick disk.
type DoubleExponentialDisk struct {
	isotropic
	HR, Hz1, Hz2, F float64
}

func (g DoubleExponentialDisk) Dimension() Dim { return Dim2 }

func (g DoubleExponentialDisk) rho0() float64 {
	return 1 / (4 * math.Pi * g.HR * g.HR * (g.F*g.Hz1 + (1-g.F)*g.Hz2))
}

func (g DoubleExponentialDisk) DensityRz(R, z float64) float64 {
	az := math.Abs(z)
	vert := g.F*math.Exp(-az/g.Hz1) + (1-g.F)*math.Exp(-az/g.Hz2)
	return g.rho0() * math.Exp(-R/g.HR) * vert
}

func (g DoubleExponentialDisk) Density(p Position) float64 {
	R, _, z := p.Cyl()
	return g.DensityRz(R, z)
}

func (g DoubleExponentialDisk) SampleR(r *nr.Random) float64 {
	return g.HR * (r.Exponential() + r.Exponential())
}

func (g DoubleExponentialDisk) SampleZ(r *nr.Random) float64 {
	hz := g.Hz2
	if r.Uniform() < g.F {
		hz = g.Hz1
	}
	z := hz * r.Exponential()
	if r.Uniform() < 0.5 {
		z = -z
	}
	return z
}

func (g DoubleExponentialDisk) GeneratePosition(r *nr.Random) Position {
	R := g.SampleR(r)
	z := g.SampleZ(r)
	phi := 2 * math.Pi * r.Uniform()
	return NewPosition(R*math.Cos(phi), R*math.Sin(phi), z)
}

func (g DoubleExponentialDisk) SigmaR() float64 {
	return g.rho0() * g.HR
}
func (g DoubleExponentialDisk) SigmaZ() float64 {
	return g.rho0() * 2 * (g.F*g.Hz1 + (1-g.F)*g.Hz2)
}
func (g DoubleExponentialDisk) SigmaX() float64 { return 2 * g.SigmaR() }
func (g DoubleExponentialDisk) SigmaY() float64 { return 2 * g.SigmaR() }

// BrokenExponentialDisk has an inner and outer radial scale length with the
// break at Rbreak, continuous at the break radius.
type BrokenExponentialDisk struct {
	isotropic
	HRin, HRout, Rbreak, Hz float64
}

func (g BrokenExponentialDisk) Dimension() Dim { return Dim2 }

func (g BrokenExponentialDisk) radialProfile(R float64) float64 {
	if R <= g.Rbreak {
		return math.Exp(-R / g.HRin)
	}
	// continuous at Rbreak: match value there, continue with outer scale.
	return math.Exp(-g.Rbreak/g.HRin) * math.Exp(-(R-g.Rbreak)/g.HRout)
}

func (g BrokenExponentialDisk) norm() float64 {
	// integral_0^inf R * radialProfile(R) dR, split at Rbreak, trapezoidal
	// for the (non-closed-form) broken piece plus a closed-form tail.
	const n = 2000
	x := nr.LinGrid(0, g.Rbreak, n)
	inner := 0.0
	for i := 0; i+1 < n; i++ {
		f := func(R float64) float64 { return R * g.radialProfile(R) }
		inner += 0.5 * (f(x[i]) + f(x[i+1])) * (x[i+1] - x[i])
	}
	// outer tail: integral_Rbreak^inf R * A * exp(-(R-Rbreak)/Hout) dR
	// with A = exp(-Rbreak/HRin); substituting u=R-Rbreak gives
	// A * (Rbreak*Hout + Hout^2).
	a := math.Exp(-g.Rbreak / g.HRin)
	outer := a * (g.Rbreak*g.HRout + g.HRout*g.HRout)
	radialIntegral := inner + outer
	return 1 / (4 * math.Pi * radialIntegral * g.Hz)
}

func (g BrokenExponentialDisk) DensityRz(R, z float64) float64 {
	return g.norm() * g.radialProfile(R) * math.Exp(-math.Abs(z)/g.Hz)
}

func (g BrokenExponentialDisk) Density(p Position) float64 {
	R, _, z := p.Cyl()
	return g.DensityRz(R, z)
}

func (g BrokenExponentialDisk) radialCDF() *nr.CDF {
	const n = 4000
	rmax := g.Rbreak + 20*g.HRout
	x := nr.LinGrid(0, rmax, n+1)
	p := make(nr.Array, n)
	for i := 0; i < n; i++ {
		rm := 0.5 * (x[i] + x[i+1])
		p[i] = rm * g.radialProfile(rm) * (x[i+1] - x[i])
	}
	return nr.NewCDF(x, p)
}

func (g BrokenExponentialDisk) SampleR(r *nr.Random) float64 {
	return r.SampleCDF(g.radialCDF())
}

func (g BrokenExponentialDisk) SampleZ(r *nr.Random) float64 {
	z := g.Hz * r.Exponential()
	if r.Uniform() < 0.5 {
		z = -z
	}
	return z
}

func (g BrokenExponentialDisk) GeneratePosition(r *nr.Random) Position {
	R := g.SampleR(r)
	z := g.SampleZ(r)
	phi := 2 * math.Pi * r.Uniform()
	return NewPosition(R*math.Cos(phi), R*math.Sin(phi), z)
}

func (g BrokenExponentialDisk) SigmaR() float64 {
	const n = 4000
	rmax := g.Rbreak + 20*g.HRout
	x := nr.LinGrid(0, rmax, n)
	sum := 0.0
	for i := 0; i+1 < n; i++ {
		sum += 0.5 * (g.radialProfile(x[i]) + g.radialProfile(x[i+1])) * (x[i+1] - x[i])
	}
	return g.norm() * sum
}
func (g BrokenExponentialDisk) SigmaZ() float64 { return g.norm() * 2 * g.Hz }
func (g BrokenExponentialDisk) SigmaX() float64 { return 2 * g.SigmaR() }
func (g BrokenExponentialDisk) SigmaY() float64 { return 2 * g.SigmaR() }

// Torus is a general axisymmetric ring-like density, Gaussian in both the
// radial offset from R0 and in z: rho(R,z) ~ exp(-((R-R0)/w)^2/2 -
// (z/hz)^2/2). The density factors as rho_R(R)*rho_z(z), but Torus has no
// SampleR/SampleZ methods, so it only implements GeneralAxisymmetric.
type Torus struct {
	isotropic
	R0, W, Hz float64
}

func (g Torus) Dimension() Dim { return Dim2 }

func (g Torus) norm() float64 {
	// integral over all space in cylindrical coords:
	// 2 pi * integral R exp(-((R-R0)/w)^2/2) dR * integral exp(-(z/hz)^2/2) dz
	// approximated by extending the radial integral over all R>=0
	// numerically (R0 >> w assumed so the Gaussian doesn't feel the R=0 wall).
	const n = 4000
	rmax := g.R0 + 12*g.W
	x := nr.LinGrid(0, rmax, n)
	sum := 0.0
	for i := 0; i+1 < n; i++ {
		f := func(R float64) float64 {
			d := (R - g.R0) / g.W
			return R * math.Exp(-0.5*d*d)
		}
		sum += 0.5 * (f(x[i]) + f(x[i+1])) * (x[i+1] - x[i])
	}
	radialIntegral := 2 * math.Pi * sum
	vertIntegral := g.Hz * math.Sqrt(2*math.Pi)
	return 1 / (radialIntegral * vertIntegral)
}

func (g Torus) DensityRz(R, z float64) float64 {
	d := (R - g.R0) / g.W
	dz := z / g.Hz
	return g.norm() * math.Exp(-0.5*d*d-0.5*dz*dz)
}

func (g Torus) Density(p Position) float64 {
	R, _, z := p.Cyl()
	return g.DensityRz(R, z)
}

func (g Torus) radialCDF() *nr.CDF {
	const n = 4000
	rmax := g.R0 + 12*g.W
	x := nr.LinGrid(0, rmax, n+1)
	p := make(nr.Array, n)
	for i := 0; i < n; i++ {
		rm := 0.5 * (x[i] + x[i+1])
		d := (rm - g.R0) / g.W
		p[i] = rm * math.Exp(-0.5*d*d) * (x[i+1] - x[i])
	}
	return nr.NewCDF(x, p)
}

func (g Torus) GeneratePosition(r *nr.Random) Position {
	R := r.SampleCDF(g.radialCDF())
	z := g.Hz * r.Gaussian()
	phi := 2 * math.Pi * r.Uniform()
	return NewPosition(R*math.Cos(phi), R*math.Sin(phi), z)
}

func (g Torus) SigmaR() float64 {
	// edge-on column along the R axis at z=0, integrated from the center
	// out to R0+12W (trapezoidal).
	const n = 2000
	rmax := g.R0 + 12*g.W
	x := nr.LinGrid(0, rmax, n)
	sum := 0.0
	for i := 0; i+1 < n; i++ {
		sum += 0.5 * (g.DensityRz(x[i], 0) + g.DensityRz(x[i+1], 0)) * (x[i+1] - x[i])
	}
	return sum
}
func (g Torus) SigmaZ() float64 { return g.DensityRz(g.R0, 0) * g.Hz * math.Sqrt(2*math.Pi) }
func (g Torus) SigmaX() float64 { return 2 * g.SigmaR() }
func (g Torus) SigmaY() float64 { return 2 * g.SigmaR() }

// Ring is a thin torus-like annulus in the z=0 plane between R0-W/2 and
// R0+W/2, uniform in R and phi, a degenerate zero-height special case of
// Torus kept as a separate catalog entry for the simpler configuration
// surface it exposes.
type Ring struct {
	isotropic
	R0, W float64
}

func (g Ring) Dimension() Dim { return Dim2 }

func (g Ring) rho0() float64 {
	rin, rout := g.R0-g.W/2, g.R0+g.W/2
	area := math.Pi * (rout*rout - rin*rin)
	return 1 / area // areal density; treated as a razor-thin sheet
}

func (g Ring) DensityRz(R, z float64) float64 {
	rin, rout := g.R0-g.W/2, g.R0+g.W/2
	if R < rin || R > rout || z != 0 {
		return 0
	}
	return g.rho0()
}

func (g Ring) Density(p Position) float64 {
	R, _, z := p.Cyl()
	return g.DensityRz(R, z)
}

func (g Ring) GeneratePosition(r *nr.Random) Position {
	rin, rout := g.R0-g.W/2, g.R0+g.W/2
	u := r.Uniform()
	R := math.Sqrt(rin*rin + u*(rout*rout-rin*rin))
	phi := 2 * math.Pi * r.Uniform()
	return NewPosition(R*math.Cos(phi), R*math.Sin(phi), 0)
}

func (g Ring) SigmaR() float64 { return g.rho0() * g.W }
func (g Ring) SigmaZ() float64 { return g.rho0() * g.W }
func (g Ring) SigmaX() float64 { return g.rho0() * g.W }
func (g Ring) SigmaY() float64 { return g.rho0() * g.W }

// ConicalShell is a thin conical sheet between polar angles theta0 and
// theta0+dtheta, uniform in r out to Rmax and in phi; a direct axisymmetric
// analog of Shell built on the polar-angle coordinate instead of radius.
type ConicalShell struct {
	isotropic
	Theta0, DTheta, Rmax float64
}

func (g ConicalShell) Dimension() Dim { return Dim2 }

func (g ConicalShell) rho0() float64 {
	mu0, mu1 := math.Cos(g.Theta0), math.Cos(g.Theta0+g.DTheta)
	vol := (2 * math.Pi / 3) * g.Rmax * g.Rmax * g.Rmax * math.Abs(mu0-mu1)
	return 1 / vol
}

func (g ConicalShell) inShell(theta float64) bool {
	return theta >= g.Theta0 && theta <= g.Theta0+g.DTheta
}

func (g ConicalShell) DensityRz(R, z float64) float64 {
	r := math.Hypot(R, z)
	if r == 0 || r > g.Rmax {
		return 0
	}
	theta := math.Acos(z / r)
	if !g.inShell(theta) {
		return 0
	}
	return g.rho0()
}

func (g ConicalShell) Density(p Position) float64 {
	R, _, z := p.Cyl()
	return g.DensityRz(R, z)
}

func (g ConicalShell) GeneratePosition(r *nr.Random) Position {
	rad := g.Rmax * math.Cbrt(r.Uniform())
	mu0, mu1 := math.Cos(g.Theta0), math.Cos(g.Theta0+g.DTheta)
	lo, hi := mu1, mu0
	if lo > hi {
		lo, hi = hi, lo
	}
	mu := lo + r.Uniform()*(hi-lo)
	theta := math.Acos(mu)
	phi := 2 * math.Pi * r.Uniform()
	return NewPosition(rad*math.Sin(theta)*math.Cos(phi), rad*math.Sin(theta)*math.Sin(phi), rad*math.Cos(theta))
}

func (g ConicalShell) SigmaR() float64 { return g.rho0() * g.Rmax }
func (g ConicalShell) SigmaZ() float64 { return g.rho0() * g.Rmax }
func (g ConicalShell) SigmaX() float64 { return g.rho0() * g.Rmax }
func (g ConicalShell) SigmaY() float64 { return g.rho0() * g.Rmax }
