package numeric

import (
	"fmt"
	"math/cmplx"
)

// Matrix is a dense square complex matrix with row-major storage.
//
// Matrix values are immutable by convention: no exported operation mutates
// its receiver or arguments, every operation returns a fresh Matrix. The
// zero value is not usable; construct via New, FromRows, Zeros or Identity.
type Matrix struct {
	dim  int
	data []complex128
}

// New creates a dim×dim matrix from row-major data. The data slice is
// copied. Panics if len(data) != dim*dim; dimensions are programmer input,
// not user input.
func New(dim int, data []complex128) Matrix {
	if len(data) != dim*dim {
		panic(fmt.Sprintf("numeric: New: %d elements for a %d×%d matrix", len(data), dim, dim))
	}
	d := make([]complex128, len(data))
	copy(d, data)
	return Matrix{dim: dim, data: d}
}

// FromRows creates a matrix from row slices. Returns an error if the rows do
// not form a square matrix; row shape is user input (definition files).
func FromRows(rows [][]complex128) (Matrix, error) {
	dim := len(rows)
	if dim == 0 {
		return Matrix{}, fmt.Errorf("numeric: empty matrix")
	}
	data := make([]complex128, 0, dim*dim)
	for i, row := range rows {
		if len(row) != dim {
			return Matrix{}, fmt.Errorf("numeric: row %d has %d entries, want %d", i, len(row), dim)
		}
		data = append(data, row...)
	}
	return Matrix{dim: dim, data: data}, nil
}

// Zeros returns the dim×dim zero matrix.
func Zeros(dim int) Matrix {
	return Matrix{dim: dim, data: make([]complex128, dim*dim)}
}

// Identity returns the dim×dim identity matrix.
func Identity(dim int) Matrix {
	m := Zeros(dim)
	for i := 0; i < dim; i++ {
		m.data[i*dim+i] = 1
	}
	return m
}

// Dim returns the matrix dimension.
func (m Matrix) Dim() int { return m.dim }

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) complex128 {
	return m.data[i*m.dim+j]
}

// Mul returns the matrix product m·other. Panics on dimension mismatch;
// callers validate dimensions at construction time.
func (m Matrix) Mul(other Matrix) Matrix {
	if m.dim != other.dim {
		panic(fmt.Sprintf("numeric: Mul dimension mismatch: %d vs %d", m.dim, other.dim))
	}
	n := m.dim
	out := Zeros(n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a := m.data[i*n+k]
			if a == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out.data[i*n+j] += a * other.data[k*n+j]
			}
		}
	}
	return out
}

// Add returns m + other.
func (m Matrix) Add(other Matrix) Matrix {
	if m.dim != other.dim {
		panic(fmt.Sprintf("numeric: Add dimension mismatch: %d vs %d", m.dim, other.dim))
	}
	out := Zeros(m.dim)
	for i := range m.data {
		out.data[i] = m.data[i] + other.data[i]
	}
	return out
}

// Sub returns m − other.
func (m Matrix) Sub(other Matrix) Matrix {
	if m.dim != other.dim {
		panic(fmt.Sprintf("numeric: Sub dimension mismatch: %d vs %d", m.dim, other.dim))
	}
	out := Zeros(m.dim)
	for i := range m.data {
		out.data[i] = m.data[i] - other.data[i]
	}
	return out
}

// ConjTranspose returns the conjugate transpose mᴴ.
func (m Matrix) ConjTranspose() Matrix {
	n := m.dim
	out := Zeros(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.data[j*n+i] = cmplx.Conj(m.data[i*n+j])
		}
	}
	return out
}

// Commutator returns a·b − b·a.
func Commutator(a, b Matrix) Matrix {
	return a.Mul(b).Sub(b.Mul(a))
}

// OuterSelf returns the outer product v·vᴴ of a column vector with itself.
func OuterSelf(v []complex128) Matrix {
	n := len(v)
	out := Zeros(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.data[i*n+j] = v[i] * cmplx.Conj(v[j])
		}
	}
	return out
}

// Trace returns the real part of the trace. For the Hermitian matrices this
// algebra deals in, the imaginary part is numerical noise.
func (m Matrix) Trace() float64 {
	var t complex128
	for i := 0; i < m.dim; i++ {
		t += m.data[i*m.dim+i]
	}
	return real(t)
}

// EqualApprox reports whether m and other agree elementwise within an
// absolute tolerance.
func (m Matrix) EqualApprox(other Matrix, tol float64) bool {
	if m.dim != other.dim {
		return false
	}
	for i := range m.data {
		if cmplx.Abs(m.data[i]-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// IsZero reports whether every element is within tol of zero.
func (m Matrix) IsZero(tol float64) bool {
	for _, v := range m.data {
		if cmplx.Abs(v) > tol {
			return false
		}
	}
	return true
}

// IsHermitian reports whether m equals its own conjugate transpose within
// the structural tolerance.
func (m Matrix) IsHermitian() bool {
	return m.EqualApprox(m.ConjTranspose(), StructureTolerance)
}
