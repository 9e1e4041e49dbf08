// Package system provides the qubit-system convenience layer over the
// algebra: dimension bookkeeping, system-sized truth constants and the
// measurement accessor for the active Context.
package system

import (
	"github.com/tarikhrnjica/cstar/internal/algebra"
)

// System describes an n-qubit system of dimension 2^n.
type System struct {
	nQubits int
	dim     int
}

// New creates a System of n qubits. Panics for negative n; qubit counts are
// programmer input.
func New(nQubits int) *System {
	if nQubits < 0 {
		panic("system: negative qubit count")
	}
	return &System{nQubits: nQubits, dim: 1 << nQubits}
}

// Qubits returns the qubit count.
func (s *System) Qubits() int { return s.nQubits }

// Dim returns the Hilbert-space dimension 2^n.
func (s *System) Dim() int { return s.dim }

// Min returns the minimal truth for this system: the zero projector, built
// without a context.
func (s *System) Min() algebra.Sieve {
	return algebra.Min(s.dim, nil)
}

// Max returns the maximal truth for this system: the identity projector,
// built without a context.
func (s *System) Max() algebra.Sieve {
	return algebra.Max(s.dim, nil)
}

// Measure returns the observable representing the active measurement: the
// first member of the Context on top of scope. Fails with an
// OBSTRUCTION_NO_CONTEXT obstruction when no Context is active.
func (s *System) Measure(scope *algebra.Scope) (*algebra.Observable, error) {
	current, ok := scope.Current()
	if !ok {
		return nil, algebra.NewNoContextError()
	}
	return current.First(), nil
}
