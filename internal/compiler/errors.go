package compiler

import (
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Validation error codes (E100-E199)
const (
	ErrGeneric = "E100" // unclassified definition error

	// System errors (E101-E109)
	ErrQubitsInvalid = "E101" // qubits must be a positive integer

	// Observable errors (E110-E119)
	ErrMatrixMissing   = "E110" // observable has no matrix
	ErrMatrixMalformed = "E111" // matrix is not square [re, im] rows
	ErrNotHermitian    = "E112" // matrix is not self-adjoint
	ErrDimensionSystem = "E113" // matrix dimension disagrees with system qubits

	// Context errors (E120-E129)
	ErrMembersMissing   = "E120" // context has no members
	ErrUnknownMember    = "E121" // member names no declared observable
	ErrMembersDimension = "E122" // members act on different dimensions
	ErrNonCommuting     = "E123" // members do not pairwise commute
)

// CompileError reports a definition that could not be parsed into an
// algebra value. Field is the CUE path relative to the definition root.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is a single finding from Validate, carrying a stable
// code so callers can group findings without parsing messages.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// formatCUEError converts a CUE evaluation error into a CompileError,
// keeping the position when the CUE error carries one. CUE errors may be
// lists; the first entry wins.
func formatCUEError(err error) *CompileError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &CompileError{Message: err.Error()}
	}
	first := errs[0]
	ce := &CompileError{Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	if path := first.Path(); len(path) > 0 {
		ce.Field = path[len(path)-1]
	}
	return ce
}
