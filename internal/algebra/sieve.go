package algebra

import (
	"fmt"
	"math"

	"github.com/tarikhrnjica/cstar/internal/numeric"
)

// Sieve is a sealed interface representing a three-valued truth value.
// Only Undefined and Projector implement it.
//
// A Sieve is either the distinguished Undefined marker (a category error:
// the proposition was asked outside its Context) or a projector onto the
// subspace where the proposition holds. The zero projector is logical False
// (Min), the identity is logical True (Max), anything strictly between is a
// proper partial truth.
//
// Sieves are immutable values. The combinators Not, And and Or return new
// Sieves and match the variant tag before touching any matrix: this
// ordering is an invariant of the poison semantics, not an optimization.
type Sieve interface {
	sieve() // Sealed - only Undefined and Projector implement it

	// Dim returns the dimension of the space the Sieve lives in.
	Dim() int

	// Context returns the Context the Sieve was produced under, or nil for
	// context-free constants.
	Context() *Context

	// Verdict classifies the Sieve as Undefined, Min, Max or Proper.
	Verdict() Verdict

	// Size reports the trace of the projector (the dimension of the
	// subspace where the proposition holds). NaN for Undefined.
	Size() float64
}

// Verdict classifies a Sieve for display and trace purposes.
type Verdict string

const (
	// VerdictUndefined marks a category error.
	VerdictUndefined Verdict = "undefined"

	// VerdictMin is the zero projector: logical False.
	VerdictMin Verdict = "min"

	// VerdictMax is the identity projector: logical True.
	VerdictMax Verdict = "max"

	// VerdictProper is a projector strictly between Min and Max.
	VerdictProper Verdict = "proper"
)

// Undefined is the category-error variant of Sieve. It carries only a
// dimension and the Context that rejected the proposition; there is no
// matrix to inspect.
type Undefined struct {
	dim     int
	context *Context
}

func (Undefined) sieve() {}

// NewUndefined creates an Undefined Sieve of the given dimension.
func NewUndefined(dim int, ctx *Context) Undefined {
	return Undefined{dim: dim, context: ctx}
}

// Dim returns the dimension the marker was sized to.
func (u Undefined) Dim() int { return u.dim }

// Context returns the Context the proposition was rejected under.
func (u Undefined) Context() *Context { return u.context }

// Verdict returns VerdictUndefined.
func (Undefined) Verdict() Verdict { return VerdictUndefined }

// Size returns NaN: an Undefined truth value has no meaningful size.
func (Undefined) Size() float64 { return math.NaN() }

// String implements fmt.Stringer.
func (Undefined) String() string {
	return "Sieve(Undefined)"
}

// Projector is the ordinary variant of Sieve: an idempotent Hermitian
// projector tagged with the Context it was produced under (possibly nil for
// the Min/Max constants).
type Projector struct {
	matrix  numeric.Matrix
	context *Context
}

func (Projector) sieve() {}

// NewProjector wraps a projector matrix as a Sieve.
func NewProjector(m numeric.Matrix, ctx *Context) Projector {
	return Projector{matrix: m, context: ctx}
}

// Min returns the zero projector: logical False, the empty subspace.
func Min(dim int, ctx *Context) Projector {
	return Projector{matrix: numeric.Zeros(dim), context: ctx}
}

// Max returns the identity projector: logical True, the full space.
func Max(dim int, ctx *Context) Projector {
	return Projector{matrix: numeric.Identity(dim), context: ctx}
}

// Matrix returns the projector matrix.
func (p Projector) Matrix() numeric.Matrix { return p.matrix }

// Dim returns the projector dimension.
func (p Projector) Dim() int { return p.matrix.Dim() }

// Context returns the producing Context, or nil.
func (p Projector) Context() *Context { return p.context }

// Size returns the real part of the projector trace: the dimension of the
// subspace where the proposition holds.
func (p Projector) Size() float64 { return p.matrix.Trace() }

// Verdict classifies the projector by its trace: ≈0 is Min, ≈dim is Max,
// anything else is a proper partial truth.
func (p Projector) Verdict() Verdict {
	tr := p.matrix.Trace()
	switch {
	case numeric.CloseTo(tr, 0):
		return VerdictMin
	case numeric.CloseTo(tr, float64(p.matrix.Dim())):
		return VerdictMax
	default:
		return VerdictProper
	}
}

// String implements fmt.Stringer.
func (p Projector) String() string {
	switch p.Verdict() {
	case VerdictMin:
		return "Sieve(Min)"
	case VerdictMax:
		return "Sieve(Max)"
	default:
		name := "?"
		if p.context != nil {
			name = p.context.Name()
		}
		return fmt.Sprintf("Sieve(dim=%.1f in %s)", p.matrix.Trace(), name)
	}
}

// Not returns the logical complement of s.
//
// Undefined stays Undefined; a projector P becomes I − P.
func Not(s Sieve) Sieve {
	switch v := s.(type) {
	case Undefined:
		return v
	case Projector:
		return Projector{
			matrix:  numeric.Identity(v.matrix.Dim()).Sub(v.matrix),
			context: v.context,
		}
	default:
		panic(fmt.Sprintf("algebra: unknown Sieve variant %T", s))
	}
}

// And returns the conjunction of a and b.
//
// If either operand is Undefined the result is Undefined (poison
// propagation, checked before any matrix access). For projectors the
// conjunction is the product P·Q, which is itself a projector only when the
// underlying operators commute - an invariant the caller guarantees by
// sourcing both operands from the same Context.
func And(a, b Sieve) Sieve {
	if a.Verdict() == VerdictUndefined || b.Verdict() == VerdictUndefined {
		return NewUndefined(a.Dim(), a.Context())
	}
	p := a.(Projector)
	q := b.(Projector)
	return Projector{matrix: p.matrix.Mul(q.matrix), context: p.context}
}

// Or returns the disjunction of a and b.
//
// If either operand is Undefined the result is Undefined. For projectors
// the disjunction is P + Q − P·Q, under the same commutation invariant as
// And.
func Or(a, b Sieve) Sieve {
	if a.Verdict() == VerdictUndefined || b.Verdict() == VerdictUndefined {
		return NewUndefined(a.Dim(), a.Context())
	}
	p := a.(Projector)
	q := b.(Projector)
	return Projector{
		matrix:  p.matrix.Add(q.matrix).Sub(p.matrix.Mul(q.matrix)),
		context: p.context,
	}
}
