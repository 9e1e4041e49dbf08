package store

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tarikhrnjica/cstar/internal/algebra"
	"github.com/tarikhrnjica/cstar/internal/numeric"
)

// Record is one evaluation-log entry: a proposition asked and answered.
//
// Numeric fields (Eigenvalue, Size) are stored in canonical string form so
// that the content-addressed ID is stable across platforms; see
// FormatValue.
type Record struct {
	// ID is the content-addressed record identity (see RecordID).
	ID string `json:"id"`

	// ScopeToken attributes the evaluation to the execution unit that ran
	// it.
	ScopeToken string `json:"scope_token"`

	// ContextName is the active Context's name, or "" for a context-free
	// evaluation.
	ContextName string `json:"context_name"`

	// Observable is the name of the operator the proposition was about.
	Observable string `json:"observable"`

	// Eigenvalue is the queried value in canonical string form.
	Eigenvalue string `json:"eigenvalue"`

	// Verdict classifies the answer: undefined, min, max or proper.
	Verdict string `json:"verdict"`

	// Size is the projector trace in canonical string form, or "" for an
	// undefined verdict.
	Size string `json:"size"`

	// Seq is the logical-clock stamp.
	Seq int64 `json:"seq"`
}

// FormatValue renders a float in the canonical form used inside records:
// shortest round-trippable decimal representation.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatSize renders a projector trace for a record. A trace is the
// dimension of a subspace, so values within tolerance of an integer snap
// to it; spectral decomposition noise must not leak into record identity.
func FormatSize(v float64) string {
	if r := math.Round(v); numeric.CloseTo(v, r) {
		v = r
	}
	return FormatValue(v)
}

// NewRecord builds a Record for an evaluated proposition and computes its
// content-addressed ID.
func NewRecord(scopeToken string, ctx *algebra.Context, observable string, eigenvalue float64, result algebra.Sieve, seq int64) (Record, error) {
	contextName := ""
	if ctx != nil {
		contextName = ctx.Name()
	}

	size := ""
	if v := result.Size(); !math.IsNaN(v) {
		size = FormatSize(v)
	}

	rec := Record{
		ScopeToken:  scopeToken,
		ContextName: contextName,
		Observable:  observable,
		Eigenvalue:  FormatValue(eigenvalue),
		Verdict:     string(result.Verdict()),
		Size:        size,
		Seq:         seq,
	}

	id, err := RecordID(rec)
	if err != nil {
		return Record{}, fmt.Errorf("new record: %w", err)
	}
	rec.ID = id
	return rec, nil
}
