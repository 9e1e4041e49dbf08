package algebra

import (
	"fmt"

	"github.com/tarikhrnjica/cstar/internal/numeric"
)

// Observable is a named Hermitian operator. In cstar, data is not a value
// but an operator awaiting a context.
//
// Observables are immutable after construction. The same Observable may be
// a member of any number of Contexts; Contexts hold non-exclusive
// references.
type Observable struct {
	name   string
	matrix numeric.Matrix
}

// NewObservable creates an Observable from a square complex matrix.
//
// Returns an *ObstructionError with code OBSTRUCTION_HERMITIAN if the matrix
// does not equal its own conjugate transpose within the structural
// tolerance.
func NewObservable(name string, matrix numeric.Matrix) (*Observable, error) {
	if !matrix.IsHermitian() {
		return nil, NewHermitianError(name)
	}
	return &Observable{name: name, matrix: matrix}, nil
}

// Name returns the observable's name. Names are unique within a Context but
// not globally enforced.
func (o *Observable) Name() string { return o.name }

// Matrix returns the operator matrix. Matrices are immutable values, so the
// internal state cannot be modified through the return.
func (o *Observable) Matrix() numeric.Matrix { return o.matrix }

// Dim returns the operator dimension.
func (o *Observable) Dim() int { return o.matrix.Dim() }

// String implements fmt.Stringer.
func (o *Observable) String() string {
	return fmt.Sprintf("Observable(%s)", o.name)
}

// Proposition evaluates "this observable has the given eigenvalue" under
// scope's active Context and returns the resulting Sieve.
//
// Resolution:
//  1. If a Context is active and this Observable is not one of its members,
//     the proposition is not expressible in that classical snapshot: the
//     result is Undefined, dimensioned to the Context.
//  2. Otherwise the spectrum of the operator is searched for eigenvalues
//     matching the query (eigenvalue tolerance policy, numeric.CloseTo).
//     No match: Min - the proposition is necessarily false.
//  3. One or more matches: the spectral projector Σ v·vᴴ over the matching
//     eigenvectors, wrapped as a proper Sieve.
//
// A nil scope is treated as "no active context". Proposition never fails:
// context mismatch degrades to Undefined rather than raising, so that
// downstream combinators can propagate it inertly.
func (o *Observable) Proposition(scope *Scope, eigenvalue float64) Sieve {
	current, active := scope.Current()

	if active && !current.Member(o) {
		// Category error: the question cannot be formulated here.
		return NewUndefined(current.Dim(), current)
	}

	vals, vecs, err := numeric.Eigh(o.matrix)
	if err != nil {
		// The backend failing on a validated Hermitian matrix is itself a
		// category error from the logic's point of view: degrade, don't fail.
		return NewUndefined(o.Dim(), current)
	}

	projector := numeric.Zeros(o.Dim())
	matched := false
	for i, val := range vals {
		if numeric.CloseTo(val, eigenvalue) {
			projector = projector.Add(numeric.OuterSelf(vecs[i]))
			matched = true
		}
	}

	if !matched {
		return Min(o.Dim(), current)
	}
	return NewProjector(projector, current)
}
