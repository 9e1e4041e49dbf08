// Package testutil provides deterministic fixtures for cstar tests: the
// standard qubit operators and shorthand constructors that fail the test
// on obstruction.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tarikhrnjica/cstar/internal/algebra"
	"github.com/tarikhrnjica/cstar/internal/numeric"
)

// Standard single-qubit operator matrices.

// PauliX returns the σx matrix [[0,1],[1,0]].
func PauliX() numeric.Matrix {
	return numeric.New(2, []complex128{0, 1, 1, 0})
}

// PauliY returns the σy matrix [[0,-i],[i,0]].
func PauliY() numeric.Matrix {
	return numeric.New(2, []complex128{0, complex(0, -1), complex(0, 1), 0})
}

// PauliZ returns the σz matrix [[1,0],[0,-1]].
func PauliZ() numeric.Matrix {
	return numeric.New(2, []complex128{1, 0, 0, -1})
}

// Observable builds an Observable from a matrix, failing the test on
// obstruction.
func Observable(t *testing.T, name string, m numeric.Matrix) *algebra.Observable {
	t.Helper()
	o, err := algebra.NewObservable(name, m)
	require.NoError(t, err)
	return o
}

// Context builds a Context, failing the test on obstruction.
func Context(t *testing.T, name string, members ...*algebra.Observable) *algebra.Context {
	t.Helper()
	c, err := algebra.NewContext(name, members)
	require.NoError(t, err)
	return c
}

// Scope returns a Scope with a fixed token for deterministic traces.
func Scope(token string) *algebra.Scope {
	return algebra.NewScopeWithToken(token)
}
