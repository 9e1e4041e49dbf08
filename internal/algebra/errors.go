package algebra

import (
	"errors"
	"fmt"
)

// ObstructionError represents a violation of physical or structural law
// detected at construction time.
//
// Obstructions include:
//   - Non-Hermitian operator: the matrix does not equal its conjugate transpose
//   - Commutation failure: two Context members do not commute
//   - Dimension mismatch: Context members act on spaces of different size
//   - Missing context: a measurement was requested with no active Context
//
// All obstructions are unrecoverable at the point of detection - they abort
// the construction or call that triggered them. There is no retry or
// partial-success path.
type ObstructionError struct {
	// Code identifies the obstruction category.
	Code ObstructionCode

	// Message is a human-readable description.
	Message string

	// Context names the Context being constructed or queried, if any.
	Context string

	// Subject names the first offending observable, if any.
	Subject string

	// Conflict names the second observable for pairwise violations.
	Conflict string
}

// ObstructionCode categorizes obstruction errors.
type ObstructionCode string

const (
	// CodeHermitian indicates an operator matrix that is not Hermitian.
	CodeHermitian ObstructionCode = "OBSTRUCTION_HERMITIAN"

	// CodeCommutation indicates two Context members that do not commute.
	CodeCommutation ObstructionCode = "OBSTRUCTION_COMMUTATION"

	// CodeDimension indicates Context members of mismatched dimension.
	CodeDimension ObstructionCode = "OBSTRUCTION_DIMENSION"

	// CodeEmptyContext indicates a Context declared with no members.
	CodeEmptyContext ObstructionCode = "OBSTRUCTION_EMPTY_CONTEXT"

	// CodeNoContext indicates a measurement with no active Context.
	CodeNoContext ObstructionCode = "OBSTRUCTION_NO_CONTEXT"
)

// Error implements the error interface.
func (e *ObstructionError) Error() string {
	switch {
	case e.Subject != "" && e.Conflict != "":
		return fmt.Sprintf("%s: %s (%q, %q)", e.Code, e.Message, e.Subject, e.Conflict)
	case e.Subject != "":
		return fmt.Sprintf("%s: %s (%q)", e.Code, e.Message, e.Subject)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsObstruction reports whether err is (or wraps) an ObstructionError.
func IsObstruction(err error) bool {
	var oe *ObstructionError
	return errors.As(err, &oe)
}

// ObstructionCodeOf extracts the obstruction code from err, or "" if err is
// not an obstruction.
func ObstructionCodeOf(err error) ObstructionCode {
	var oe *ObstructionError
	if errors.As(err, &oe) {
		return oe.Code
	}
	return ""
}

// NewHermitianError creates an ObstructionError for a non-Hermitian operator.
func NewHermitianError(name string) *ObstructionError {
	return &ObstructionError{
		Code:    CodeHermitian,
		Message: fmt.Sprintf("observable %q is not Hermitian", name),
		Subject: name,
	}
}

// NewCommutationError creates an ObstructionError for a non-commuting pair.
// The pair reported is the first violation found in declaration order.
func NewCommutationError(contextName, a, b string) *ObstructionError {
	return &ObstructionError{
		Code:     CodeCommutation,
		Message:  fmt.Sprintf("context %q is invalid: %q and %q do not commute", contextName, a, b),
		Context:  contextName,
		Subject:  a,
		Conflict: b,
	}
}

// NewDimensionError creates an ObstructionError for mismatched member
// dimensions inside a Context.
func NewDimensionError(contextName, a, b string, dimA, dimB int) *ObstructionError {
	return &ObstructionError{
		Code:     CodeDimension,
		Message:  fmt.Sprintf("context %q is invalid: %q is %d-dimensional but %q is %d-dimensional", contextName, a, dimA, b, dimB),
		Context:  contextName,
		Subject:  a,
		Conflict: b,
	}
}

// NewEmptyContextError creates an ObstructionError for a memberless Context.
func NewEmptyContextError(contextName string) *ObstructionError {
	return &ObstructionError{
		Code:    CodeEmptyContext,
		Message: fmt.Sprintf("context %q declares no observables", contextName),
		Context: contextName,
	}
}

// NewNoContextError creates an ObstructionError for measuring outside any
// Context.
func NewNoContextError() *ObstructionError {
	return &ObstructionError{
		Code:    CodeNoContext,
		Message: "cannot measure outside a context",
	}
}

// CohomologyError is reserved for global-topology paradoxes in circuit
// generation. No code path in the core algebra raises it; it is declared so
// that callers can already discriminate the two failure families.
type CohomologyError struct {
	Message string
}

// Error implements the error interface.
func (e *CohomologyError) Error() string {
	return fmt.Sprintf("COHOMOLOGY: %s", e.Message)
}
