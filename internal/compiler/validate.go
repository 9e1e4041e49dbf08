package compiler

import (
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"

	"github.com/tarikhrnjica/cstar/internal/algebra"
)

// Validate checks a CUE definition value and returns every problem found.
// It shares the parsing path with CompileDefinitions but keeps going past
// failures, so a validate run reports all broken observables and contexts
// at once.
func Validate(v cue.Value) []ValidationError {
	var findings []ValidationError
	add := func(field string, err error) {
		findings = append(findings, toValidationError(field, err))
	}

	if err := v.Err(); err != nil {
		add("", formatCUEError(err))
		return findings
	}

	defs := &Definitions{
		Observables: make(map[string]*algebra.Observable),
		Contexts:    make(map[string]*algebra.Context),
	}
	if err := compileSystem(v, defs); err != nil {
		add("system", err)
	}

	obsVal := v.LookupPath(cue.ParsePath("observable"))
	if obsVal.Exists() {
		iter, err := obsVal.Fields()
		if err != nil {
			add("observable", formatCUEError(err))
		} else {
			for iter.Next() {
				name := iter.Label()
				obs, err := compileObservable(name, iter.Value())
				if err != nil {
					add("observable."+name, err)
					continue
				}
				if defs.System != nil && obs.Dim() != defs.System.Dim() {
					findings = append(findings, ValidationError{
						Field:   "observable." + name,
						Message: fmt.Sprintf("matrix is %d-dimensional but the system of %d qubits needs dimension %d", obs.Dim(), defs.System.Qubits(), defs.System.Dim()),
						Code:    ErrDimensionSystem,
						Line:    iter.Value().Pos().Line(),
					})
					continue
				}
				defs.ObservableNames = append(defs.ObservableNames, name)
				defs.Observables[name] = obs
			}
		}
	}

	ctxVal := v.LookupPath(cue.ParsePath("context"))
	if ctxVal.Exists() {
		iter, err := ctxVal.Fields()
		if err != nil {
			add("context", formatCUEError(err))
		} else {
			for iter.Next() {
				name := iter.Label()
				if _, err := compileContext(name, iter.Value(), defs); err != nil {
					add("context."+name, err)
				}
			}
		}
	}

	return findings
}

// toValidationError classifies a compile failure under a stable code. The
// algebra's obstruction codes map onto the E11x/E12x definition codes.
func toValidationError(field string, err error) ValidationError {
	ve := ValidationError{Field: field, Message: err.Error(), Code: ErrGeneric}

	var ce *CompileError
	if errors.As(err, &ce) {
		if ce.Field != "" {
			ve.Field = ce.Field
		}
		ve.Message = ce.Message
		if ce.Pos.IsValid() {
			ve.Line = ce.Pos.Line()
		}
		ve.Code = classifyMessage(ce.Field, ce.Message)
	}
	return ve
}

// classifyMessage assigns a code to compile errors that do not wrap an
// algebraic obstruction. Obstruction messages pass through here too: their
// code prefix still identifies them after CompileError flattened the chain.
func classifyMessage(field, message string) string {
	switch {
	case strings.Contains(message, string(algebra.CodeHermitian)):
		return ErrNotHermitian
	case strings.Contains(message, string(algebra.CodeCommutation)):
		return ErrNonCommuting
	case strings.Contains(message, string(algebra.CodeDimension)):
		return ErrMembersDimension
	case strings.Contains(message, string(algebra.CodeEmptyContext)):
		return ErrMembersMissing
	case strings.Contains(field, "qubits"):
		return ErrQubitsInvalid
	case strings.Contains(message, "matrix is required"):
		return ErrMatrixMissing
	case strings.Contains(field, "matrix"):
		return ErrMatrixMalformed
	case strings.Contains(message, "unknown observable"):
		return ErrUnknownMember
	case strings.Contains(message, "members"):
		return ErrMembersMissing
	default:
		return ErrGeneric
	}
}
