package algebra

import (
	"fmt"

	"github.com/tarikhrnjica/cstar/internal/numeric"
)

// Context is a named set of mutually commuting Observables: a commutative
// subalgebra representing a classical snapshot or measurement setup.
//
// A Context is validated once at construction and immutable thereafter.
// Entering and exiting a Context is a scoped activation on a Scope, not a
// lifecycle event of the Context itself.
type Context struct {
	name        string
	observables []*Observable
}

// NewContext creates a Context from an ordered list of member Observables.
//
// Validation, in order:
//  1. At least one member (OBSTRUCTION_EMPTY_CONTEXT).
//  2. Every member shares the first member's dimension
//     (OBSTRUCTION_DIMENSION). Checked before commutativity so a shape
//     mismatch surfaces as a named obstruction, not a backend panic.
//  3. Every unordered pair of distinct members commutes within the
//     structural tolerance (OBSTRUCTION_COMMUTATION). The first violating
//     pair in declaration order is reported; no attempt is made to collect
//     all violations.
func NewContext(name string, observables []*Observable) (*Context, error) {
	if len(observables) == 0 {
		return nil, NewEmptyContextError(name)
	}

	first := observables[0]
	for _, o := range observables[1:] {
		if o.Dim() != first.Dim() {
			return nil, NewDimensionError(name, first.Name(), o.Name(), first.Dim(), o.Dim())
		}
	}

	for i, a := range observables {
		for _, b := range observables[i+1:] {
			comm := numeric.Commutator(a.Matrix(), b.Matrix())
			if !comm.IsZero(numeric.StructureTolerance) {
				return nil, NewCommutationError(name, a.Name(), b.Name())
			}
		}
	}

	members := make([]*Observable, len(observables))
	copy(members, observables)
	return &Context{name: name, observables: members}, nil
}

// Name returns the context's name.
func (c *Context) Name() string { return c.name }

// Members returns the member Observables in declaration order. The returned
// slice is a copy.
func (c *Context) Members() []*Observable {
	members := make([]*Observable, len(c.observables))
	copy(members, c.observables)
	return members
}

// Member reports whether o is one of this Context's declared members.
// Membership is by identity: the same Observable instance, not an equal
// matrix.
func (c *Context) Member(o *Observable) bool {
	for _, m := range c.observables {
		if m == o {
			return true
		}
	}
	return false
}

// First returns the first declared member. Propositions asked outside the
// Context are dimensioned against it.
func (c *Context) First() *Observable { return c.observables[0] }

// Dim returns the operator dimension shared by all members.
func (c *Context) Dim() int { return c.observables[0].Dim() }

// String implements fmt.Stringer.
func (c *Context) String() string {
	return fmt.Sprintf("Context(%s)", c.name)
}
