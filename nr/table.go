package nr

import "fmt"

// Table2 is a dense, row-major 2-D table indexed (i,j), used for
// per-grain-size efficiencies Q(lambda, a) and per-population cross
// sections indexed by (population, wavelength).
//
// The backing store is a flat slice rather than gonum's mat.Dense: mat.Dense
// tops out at two dimensions, and Table3/Table4 below need to share the
// same indexing convention for Mueller coefficients up to four dimensions,
// so all three keep a hand-rolled flat layout instead of mixing a matrix
// library in for N=2 only.
type Table2 struct {
	Rows, Cols int
	Data       []float64
}

// NewTable2 allocates a zeroed Table2 of the given shape.
func NewTable2(rows, cols int) *Table2 {
	return &Table2{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

func (t *Table2) index(i, j int) int {
	if i < 0 || i >= t.Rows || j < 0 || j >= t.Cols {
		panic(fmt.Sprintf("nr: Table2 index (%d,%d) out of range [%d,%d)", i, j, t.Rows, t.Cols))
	}
	return i*t.Cols + j
}

// At returns the value at (i,j).
func (t *Table2) At(i, j int) float64 { return t.Data[t.index(i, j)] }

// Set stores v at (i,j).
func (t *Table2) Set(i, j int, v float64) { t.Data[t.index(i, j)] = v }

// Row returns the j-th row as a slice sharing the table's backing array;
// callers that need an independent copy must clone it.
func (t *Table2) Row(i int) []float64 {
	start := i * t.Cols
	return t.Data[start : start+t.Cols]
}

// Table3 is a dense row-major 3-D table, used for Mueller coefficients
// indexed (wavelength, size, angle) when polarization is disabled for the
// angle axis or for per-population-per-bin tables.
type Table3 struct {
	D0, D1, D2 int
	Data       []float64
}

func NewTable3(d0, d1, d2 int) *Table3 {
	return &Table3{D0: d0, D1: d1, D2: d2, Data: make([]float64, d0*d1*d2)}
}

func (t *Table3) index(i, j, k int) int {
	if i < 0 || i >= t.D0 || j < 0 || j >= t.D1 || k < 0 || k >= t.D2 {
		panic(fmt.Sprintf("nr: Table3 index (%d,%d,%d) out of range", i, j, k))
	}
	return (i*t.D1+j)*t.D2 + k
}

func (t *Table3) At(i, j, k int) float64     { return t.Data[t.index(i, j, k)] }
func (t *Table3) Set(i, j, k int, v float64) { t.Data[t.index(i, j, k)] = v }

// Table4 is a dense row-major 4-D table, used for the full Mueller
// coefficient set indexed (wavelength, size, angle, coefficient).
type Table4 struct {
	D0, D1, D2, D3 int
	Data           []float64
}

func NewTable4(d0, d1, d2, d3 int) *Table4 {
	return &Table4{D0: d0, D1: d1, D2: d2, D3: d3, Data: make([]float64, d0*d1*d2*d3)}
}

func (t *Table4) index(i, j, k, l int) int {
	if i < 0 || i >= t.D0 || j < 0 || j >= t.D1 || k < 0 || k >= t.D2 || l < 0 || l >= t.D3 {
		panic(fmt.Sprintf("nr: Table4 index (%d,%d,%d,%d) out of range", i, j, k, l))
	}
	return ((i*t.D1+j)*t.D2+k)*t.D3 + l
}

func (t *Table4) At(i, j, k, l int) float64     { return t.Data[t.index(i, j, k, l)] }
func (t *Table4) Set(i, j, k, l int, v float64) { t.Data[t.index(i, j, k, l)] = v }
