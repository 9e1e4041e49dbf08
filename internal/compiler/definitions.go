package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/tarikhrnjica/cstar/internal/algebra"
	"github.com/tarikhrnjica/cstar/internal/numeric"
	"github.com/tarikhrnjica/cstar/internal/system"
)

// Definitions is the compiled form of a definition file: the declared
// system plus observables and contexts in declaration order.
type Definitions struct {
	// System is nil when the file declares no system block; the dimension
	// is then whatever the observables carry.
	System *system.System

	ObservableNames []string
	Observables     map[string]*algebra.Observable

	ContextNames []string
	Contexts     map[string]*algebra.Context
}

// Observable returns the named observable, or nil.
func (d *Definitions) Observable(name string) *algebra.Observable {
	return d.Observables[name]
}

// Context returns the named context, or nil.
func (d *Definitions) Context(name string) *algebra.Context {
	return d.Contexts[name]
}

// CompileDefinitions parses a CUE value holding system definitions into
// algebra values. It fails on the first problem; Validate is the
// collect-everything counterpart.
func CompileDefinitions(v cue.Value) (*Definitions, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	defs := &Definitions{
		Observables: make(map[string]*algebra.Observable),
		Contexts:    make(map[string]*algebra.Context),
	}

	if err := compileSystem(v, defs); err != nil {
		return nil, err
	}
	if err := compileObservables(v, defs); err != nil {
		return nil, err
	}
	if err := compileContexts(v, defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func compileSystem(v cue.Value, defs *Definitions) error {
	sysVal := v.LookupPath(cue.ParsePath("system"))
	if !sysVal.Exists() {
		return nil
	}
	qubitsVal := sysVal.LookupPath(cue.ParsePath("qubits"))
	if !qubitsVal.Exists() {
		return &CompileError{
			Field:   "system.qubits",
			Message: "qubits is required in a system block",
			Pos:     sysVal.Pos(),
		}
	}
	qubits, err := qubitsVal.Int64()
	if err != nil {
		return &CompileError{
			Field:   "system.qubits",
			Message: fmt.Sprintf("qubits must be an integer: %v", err),
			Pos:     qubitsVal.Pos(),
		}
	}
	if qubits < 0 {
		return &CompileError{
			Field:   "system.qubits",
			Message: fmt.Sprintf("qubits must be non-negative, got %d", qubits),
			Pos:     qubitsVal.Pos(),
		}
	}
	defs.System = system.New(int(qubits))
	return nil
}

func compileObservables(v cue.Value, defs *Definitions) error {
	obsVal := v.LookupPath(cue.ParsePath("observable"))
	if !obsVal.Exists() {
		return nil
	}
	iter, err := obsVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Label()
		obs, err := compileObservable(name, iter.Value())
		if err != nil {
			return err
		}
		if defs.System != nil && obs.Dim() != defs.System.Dim() {
			return &CompileError{
				Field:   "observable." + name,
				Message: fmt.Sprintf("matrix is %d-dimensional but the system of %d qubits needs dimension %d", obs.Dim(), defs.System.Qubits(), defs.System.Dim()),
				Pos:     iter.Value().Pos(),
			}
		}
		defs.ObservableNames = append(defs.ObservableNames, name)
		defs.Observables[name] = obs
	}
	return nil
}

func compileObservable(name string, v cue.Value) (*algebra.Observable, error) {
	matrixVal := v.LookupPath(cue.ParsePath("matrix"))
	if !matrixVal.Exists() {
		return nil, &CompileError{
			Field:   "observable." + name,
			Message: "matrix is required",
			Pos:     v.Pos(),
		}
	}
	matrix, err := parseMatrix(name, matrixVal)
	if err != nil {
		return nil, err
	}
	obs, err := algebra.NewObservable(name, matrix)
	if err != nil {
		return nil, &CompileError{
			Field:   "observable." + name,
			Message: err.Error(),
			Pos:     matrixVal.Pos(),
		}
	}
	return obs, nil
}

// parseMatrix reads a square matrix of [re, im] pairs.
func parseMatrix(name string, v cue.Value) (numeric.Matrix, error) {
	rowIter, err := v.List()
	if err != nil {
		return numeric.Matrix{}, &CompileError{
			Field:   "observable." + name + ".matrix",
			Message: fmt.Sprintf("matrix must be a list of rows: %v", err),
			Pos:     v.Pos(),
		}
	}
	var rows [][]complex128
	for i := 0; rowIter.Next(); i++ {
		entryIter, err := rowIter.Value().List()
		if err != nil {
			return numeric.Matrix{}, &CompileError{
				Field:   fmt.Sprintf("observable.%s.matrix[%d]", name, i),
				Message: fmt.Sprintf("row must be a list of [re, im] pairs: %v", err),
				Pos:     rowIter.Value().Pos(),
			}
		}
		var row []complex128
		for j := 0; entryIter.Next(); j++ {
			entry, err := parseComplex(entryIter.Value())
			if err != nil {
				return numeric.Matrix{}, &CompileError{
					Field:   fmt.Sprintf("observable.%s.matrix[%d][%d]", name, i, j),
					Message: err.Error(),
					Pos:     entryIter.Value().Pos(),
				}
			}
			row = append(row, entry)
		}
		rows = append(rows, row)
	}
	m, err := numeric.FromRows(rows)
	if err != nil {
		return numeric.Matrix{}, &CompileError{
			Field:   "observable." + name + ".matrix",
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return m, nil
}

// parseComplex reads one [re, im] pair.
func parseComplex(v cue.Value) (complex128, error) {
	iter, err := v.List()
	if err != nil {
		return 0, fmt.Errorf("entry must be an [re, im] pair: %w", err)
	}
	var parts []float64
	for iter.Next() {
		f, err := iter.Value().Float64()
		if err != nil {
			return 0, fmt.Errorf("entry component must be a number: %w", err)
		}
		parts = append(parts, f)
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("entry must have exactly two components [re, im], got %d", len(parts))
	}
	return complex(parts[0], parts[1]), nil
}

func compileContexts(v cue.Value, defs *Definitions) error {
	ctxVal := v.LookupPath(cue.ParsePath("context"))
	if !ctxVal.Exists() {
		return nil
	}
	iter, err := ctxVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Label()
		ctx, err := compileContext(name, iter.Value(), defs)
		if err != nil {
			return err
		}
		defs.ContextNames = append(defs.ContextNames, name)
		defs.Contexts[name] = ctx
	}
	return nil
}

func compileContext(name string, v cue.Value, defs *Definitions) (*algebra.Context, error) {
	membersVal := v.LookupPath(cue.ParsePath("members"))
	if !membersVal.Exists() {
		return nil, &CompileError{
			Field:   "context." + name,
			Message: "members is required",
			Pos:     v.Pos(),
		}
	}
	memberIter, err := membersVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   "context." + name + ".members",
			Message: fmt.Sprintf("members must be a list of observable names: %v", err),
			Pos:     membersVal.Pos(),
		}
	}
	var members []*algebra.Observable
	for i := 0; memberIter.Next(); i++ {
		memberName, err := memberIter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("context.%s.members[%d]", name, i),
				Message: fmt.Sprintf("member must be a string: %v", err),
				Pos:     memberIter.Value().Pos(),
			}
		}
		obs, ok := defs.Observables[memberName]
		if !ok {
			return nil, &CompileError{
				Field:   fmt.Sprintf("context.%s.members[%d]", name, i),
				Message: fmt.Sprintf("unknown observable %q", memberName),
				Pos:     memberIter.Value().Pos(),
			}
		}
		members = append(members, obs)
	}
	ctx, err := algebra.NewContext(name, members)
	if err != nil {
		return nil, &CompileError{
			Field:   "context." + name,
			Message: err.Error(),
			Pos:     membersVal.Pos(),
		}
	}
	return ctx, nil
}
