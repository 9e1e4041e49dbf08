package numeric

import "gonum.org/v1/gonum/floats/scalar"

// Tolerance policy for the whole algebra.
//
// Structural checks (is this operator Hermitian, do these two operators
// commute) use a strict absolute tolerance. Eigenvalue matching (does this
// spectrum contain the queried value) uses the looser combined relative and
// absolute test, because queried values are user input with ordinary
// floating-point provenance.
const (
	// StructureTolerance is the absolute tolerance for Hermitian and
	// commutator checks.
	StructureTolerance = 1e-9

	// eigenvalueRelTol and eigenvalueAbsTol match eigenvalues against a
	// queried value.
	eigenvalueRelTol = 1e-5
	eigenvalueAbsTol = 1e-8
)

// CloseTo reports whether two real values match under the eigenvalue
// tolerance policy.
func CloseTo(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, eigenvalueAbsTol, eigenvalueRelTol)
}

// WithinStructure reports whether two real values match under the strict
// structural tolerance.
func WithinStructure(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, StructureTolerance)
}
