package numeric

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Tolerances private to the eigensolver. Grouping collects the doubled
// copies of each eigenvalue produced by the real embedding; the dependency
// threshold separates a genuinely new eigenvector from the phase-rotated
// duplicate of one already kept.
const (
	eigenGroupTol      = 1e-8
	eigenDependencyTol = 1e-6
)

// Eigh computes the eigendecomposition of a Hermitian matrix.
//
// It returns the eigenvalues in ascending order together with a matching
// orthonormal set of eigenvectors. The caller is responsible for passing a
// Hermitian matrix; Observables enforce that at construction.
//
// The solver embeds H = A + iB into the real symmetric matrix
//
//	S = | A  -B |
//	    | B   A |
//
// whose spectrum is that of H with every eigenvalue doubled, and whose
// eigenvector pairs (x; y) recover complex eigenvectors x + iy. gonum's
// mat.EigenSym factorizes S; the doubled spectrum is then deduplicated by a
// complex Gram-Schmidt pass over each group of equal eigenvalues.
func Eigh(m Matrix) ([]float64, [][]complex128, error) {
	d := m.dim
	sym := embedHermitian(m)

	var es mat.EigenSym
	if !es.Factorize(sym, true) {
		return nil, nil, fmt.Errorf("numeric: Hermitian eigendecomposition failed for %d×%d matrix", d, d)
	}

	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	eigenvalues := make([]float64, 0, d)
	eigenvectors := make([][]complex128, 0, d)

	for start := 0; start < 2*d; {
		end := start + 1
		tol := eigenGroupTol * (1 + math.Abs(vals[start]))
		for end < 2*d && math.Abs(vals[end]-vals[start]) <= tol {
			end++
		}

		// Each group holds the embedded copies of one eigenspace. A complex
		// Gram-Schmidt pass keeps one representative per complex dimension
		// and drops the phase-rotated duplicates.
		var kept [][]complex128
		for col := start; col < end; col++ {
			v := complexColumn(&vecs, col, d)
			for _, u := range kept {
				projectOut(v, u)
			}
			n := norm(v)
			if n <= eigenDependencyTol {
				continue
			}
			scale(v, complex(1/n, 0))
			kept = append(kept, v)
			eigenvalues = append(eigenvalues, vals[col])
			eigenvectors = append(eigenvectors, v)
		}
		start = end
	}

	if len(eigenvalues) != d {
		return nil, nil, fmt.Errorf("numeric: eigendecomposition recovered %d eigenvectors, want %d", len(eigenvalues), d)
	}
	return eigenvalues, eigenvectors, nil
}

// embedHermitian builds the real symmetric 2d×2d embedding of m.
func embedHermitian(m Matrix) *mat.SymDense {
	d := m.dim
	data := make([]float64, 4*d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			re := real(m.At(i, j))
			im := imag(m.At(i, j))
			// Blocks: top-left A, top-right -B, bottom-left B, bottom-right A.
			data[i*2*d+j] = re
			data[i*2*d+(d+j)] = -im
			data[(d+i)*2*d+j] = im
			data[(d+i)*2*d+(d+j)] = re
		}
	}
	return mat.NewSymDense(2*d, data)
}

// complexColumn reads embedded column col as the complex vector x + iy.
func complexColumn(vecs *mat.Dense, col, d int) []complex128 {
	v := make([]complex128, d)
	for i := 0; i < d; i++ {
		v[i] = complex(vecs.At(i, col), vecs.At(d+i, col))
	}
	return v
}

// projectOut removes from v its component along the unit vector u.
func projectOut(v, u []complex128) {
	var dot complex128
	for i := range u {
		dot += cmplx.Conj(u[i]) * v[i]
	}
	for i := range v {
		v[i] -= dot * u[i]
	}
}

func norm(v []complex128) float64 {
	var s float64
	for _, x := range v {
		s += real(x)*real(x) + imag(x)*imag(x)
	}
	return math.Sqrt(s)
}

func scale(v []complex128, c complex128) {
	for i := range v {
		v[i] *= c
	}
}
