package grain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soniakeys/dustrt/errs"
	"github.com/soniakeys/dustrt/nr"
)

// micron converts the resource files' micron-valued sizes and
// wavelengths to the SI meters the rest of the engine uses.
const micron = 1e-6

// Loader reads the plain-text resource-file formats of section 6 into a
// Composition, converting units at load time.
type Loader struct {
	RhoBulk float64 // bulk mass density, kg/m^3, supplied by the caller
	Reverse bool    // true when each block lists wavelength descending
}

// nextDataLine returns the next parsed, comment-stripped, whitespace-split
// line; blank and '#'-prefixed lines are skipped.
func nextDataLine(sc *bufio.Scanner) ([]string, bool) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), true
	}
	return nil, false
}

// Load parses the single-file N_a/N_lambda block layout described in
// section 6: a header (# lines, ignored), N_a, N_lambda, then N_a blocks
// of N_lambda+1 lines (grain size, then N_lambda rows of lambda, Qabs,
// Qsca, g).
func (l *Loader) Load(r io.Reader, name string) (*Composition, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	fields, ok := nextDataLine(sc)
	if !ok {
		return nil, fmt.Errorf("%w: %s: empty resource file", errs.ErrResource, name)
	}
	na, err := strconv.Atoi(fields[0])
	if err != nil || na <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid grain-size count", errs.ErrResource, name)
	}

	fields, ok = nextDataLine(sc)
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing wavelength count", errs.ErrResource, name)
	}
	nl, err := strconv.Atoi(fields[0])
	if err != nil || nl <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid wavelength count", errs.ErrResource, name)
	}

	aSizes := make(nr.Array, na)
	lambdas := make(nr.Array, nl)
	qabs := nr.NewTable2(na, nl)
	qsca := nr.NewTable2(na, nl)
	g := nr.NewTable2(na, nl)

	for ia := 0; ia < na; ia++ {
		fields, ok = nextDataLine(sc)
		if !ok {
			return nil, fmt.Errorf("%w: %s: truncated at grain-size block %d", errs.ErrResource, name, ia)
		}
		a, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: invalid grain size at block %d", errs.ErrResource, name, ia)
		}
		aSizes[ia] = a * micron

		for il := 0; il < nl; il++ {
			row := il
			if l.Reverse {
				row = nl - 1 - il
			}
			fields, ok = nextDataLine(sc)
			if !ok {
				return nil, fmt.Errorf("%w: %s: truncated in block %d row %d", errs.ErrResource, name, ia, il)
			}
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: %s: short row in block %d row %d", errs.ErrResource, name, ia, il)
			}
			lambda, e1 := strconv.ParseFloat(fields[0], 64)
			qa, e2 := strconv.ParseFloat(fields[1], 64)
			qs, e3 := strconv.ParseFloat(fields[2], 64)
			gg, e4 := strconv.ParseFloat(fields[3], 64)
			if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
				return nil, fmt.Errorf("%w: %s: malformed numeric field in block %d row %d", errs.ErrResource, name, ia, il)
			}
			if ia == 0 {
				lambdas[row] = lambda * micron
			}
			qabs.Set(ia, row, qa)
			qsca.Set(ia, row, qs)
			g.Set(ia, row, gg)
		}
	}

	return &Composition{
		Name:    name,
		RhoBulk: l.RhoBulk,
		ASizes:  aSizes,
		Lambdas: lambdas,
		Qabs:    qabs,
		Qsca:    qsca,
		G:       g,
	}, nil
}

// LoadDustEM parses the DustEM-style three-file layout: a wavelength file
// (one lambda per line, microns), and two N_a x N_lambda efficiency/g
// tables each laid out row-major with a leading grain-size column.
func (l *Loader) LoadDustEM(lambdaFile, qFile, gFile io.Reader, name string) (*Composition, error) {
	scLambda := bufio.NewScanner(lambdaFile)
	var lambdas nr.Array
	for {
		fields, ok := nextDataLine(scLambda)
		if !ok {
			break
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: invalid wavelength entry", errs.ErrResource, name)
		}
		lambdas = append(lambdas, v*micron)
	}
	if len(lambdas) == 0 {
		return nil, fmt.Errorf("%w: %s: empty wavelength file", errs.ErrResource, name)
	}

	readTable := func(r io.Reader) (nr.Array, *nr.Table2, error) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		var sizes nr.Array
		var rows [][]float64
		for {
			fields, ok := nextDataLine(sc)
			if !ok {
				break
			}
			if len(fields) < 1+len(lambdas) {
				return nil, nil, fmt.Errorf("%w: %s: row shorter than wavelength grid", errs.ErrResource, name)
			}
			a, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %s: invalid grain size", errs.ErrResource, name)
			}
			sizes = append(sizes, a*micron)
			row := make([]float64, len(lambdas))
			for j := range row {
				v, err := strconv.ParseFloat(fields[1+j], 64)
				if err != nil {
					return nil, nil, fmt.Errorf("%w: %s: malformed value", errs.ErrResource, name)
				}
				row[j] = v
			}
			rows = append(rows, row)
		}
		t := nr.NewTable2(len(sizes), len(lambdas))
		for i, row := range rows {
			for j, v := range row {
				t.Set(i, j, v)
			}
		}
		return sizes, t, nil
	}

	aSizes, qabs, err := readTable(qFile)
	if err != nil {
		return nil, err
	}
	aSizesG, g, err := readTable(gFile)
	if err != nil {
		return nil, err
	}
	if len(aSizesG) != len(aSizes) {
		return nil, fmt.Errorf("%w: %s: efficiency and g tables disagree on grain-size count", errs.ErrResource, name)
	}
	qsca := nr.NewTable2(len(aSizes), len(lambdas))
	return &Composition{
		Name:    name,
		RhoBulk: l.RhoBulk,
		ASizes:  aSizes,
		Lambdas: lambdas,
		Qabs:    qabs,
		Qsca:    qsca,
		G:       g,
	}, nil
}

// LoadStokes adds a per-(lambda,a,theta) Mueller Sxx table to an
// already-loaded Composition, parsed from a simple scattering-angle grid
// file: a header line of N_theta angles in degrees, then one row per
// (size,lambda) pair of N_theta Sxx values, in the same (size,lambda)
// traversal order as the base resource file.
func LoadStokes(c *Composition, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	fields, ok := nextDataLine(sc)
	if !ok {
		return fmt.Errorf("%w: %s: empty Stokes file", errs.ErrResource, c.Name)
	}
	nth := len(fields)
	theta := make(nr.Array, nth)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: invalid scattering angle", errs.ErrResource, c.Name)
		}
		theta[i] = v * 3.141592653589793 / 180
	}

	na, nl := len(c.ASizes), len(c.Lambdas)
	sxx := nr.NewTable4(na, nl, nth, 1)
	for ia := 0; ia < na; ia++ {
		for il := 0; il < nl; il++ {
			fields, ok = nextDataLine(sc)
			if !ok {
				return fmt.Errorf("%w: %s: truncated Stokes table at (%d,%d)", errs.ErrResource, c.Name, ia, il)
			}
			if len(fields) < nth {
				return fmt.Errorf("%w: %s: short Stokes row", errs.ErrResource, c.Name)
			}
			for it := 0; it < nth; it++ {
				v, err := strconv.ParseFloat(fields[it], 64)
				if err != nil {
					return fmt.Errorf("%w: %s: malformed Stokes value", errs.ErrResource, c.Name)
				}
				sxx.Set(ia, il, it, 0, v)
			}
		}
	}
	c.Sxx = sxx
	c.Theta = theta
	return nil
}
