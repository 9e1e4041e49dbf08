package harness

import (
	"context"
	"fmt"

	"github.com/tarikhrnjica/cstar/internal/algebra"
	"github.com/tarikhrnjica/cstar/internal/compiler"
	"github.com/tarikhrnjica/cstar/internal/session"
	"github.com/tarikhrnjica/cstar/internal/store"
)

// DefaultScopeToken is used when a scenario does not pin its own token.
// A fixed default keeps golden traces stable across runs.
const DefaultScopeToken = "test-scope-default"

// activation pairs an entered context with its guard so exits can be
// matched by name.
type activation struct {
	name  string
	guard *algebra.Activation
}

// Run executes a scenario against a fresh in-memory store and returns the
// result. Scenario-definition problems (unknown observables, mismatched
// exits) return an error; algebra outcomes that disagree with expect
// clauses or assertions fail the result instead.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	defer st.Close()

	value, err := compiler.LoadDir(scenario.Definitions)
	if err != nil {
		return nil, fmt.Errorf("load definitions: %w", err)
	}
	defs, err := compiler.CompileDefinitions(value)
	if err != nil {
		return nil, fmt.Errorf("compile definitions: %w", err)
	}

	token := scenario.ScopeToken
	if token == "" {
		token = DefaultScopeToken
	}
	sess := session.NewWithScope(algebra.NewScopeWithToken(token), store.NewClock(), st)

	result := NewResult()
	ctx := context.Background()

	var active []activation
	defer func() {
		for i := len(active) - 1; i >= 0; i-- {
			active[i].guard.Exit()
		}
	}()

	for i, step := range scenario.Steps {
		switch {
		case step.Enter != "":
			cx := defs.Context(step.Enter)
			if cx == nil {
				return nil, fmt.Errorf("steps[%d]: unknown context %q", i, step.Enter)
			}
			active = append(active, activation{name: step.Enter, guard: sess.Scope().Enter(cx)})

		case step.Exit != "":
			if len(active) == 0 {
				return nil, fmt.Errorf("steps[%d]: exit %q with no active context", i, step.Exit)
			}
			top := active[len(active)-1]
			if top.name != step.Exit {
				return nil, fmt.Errorf("steps[%d]: exit %q but innermost context is %q", i, step.Exit, top.name)
			}
			active = active[:len(active)-1]
			top.guard.Exit()

		case step.Evaluate != nil:
			obs := defs.Observable(step.Evaluate.Observable)
			if obs == nil {
				return nil, fmt.Errorf("steps[%d]: unknown observable %q", i, step.Evaluate.Observable)
			}
			sieve, err := sess.Evaluate(ctx, obs, step.Evaluate.Eigenvalue)
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: %w", i, err)
			}
			checkExpect(result, i, step, sieve)
		}
	}

	records, err := st.ReadEvaluations(ctx, store.Filter{ScopeToken: token})
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	for _, rec := range records {
		result.Trace = append(result.Trace, TraceEvent{
			Observable: rec.Observable,
			Context:    rec.ContextName,
			Eigenvalue: rec.Eigenvalue,
			Verdict:    rec.Verdict,
			Size:       rec.Size,
			Seq:        rec.Seq,
		})
	}

	checkAssertions(result, scenario)
	return result, nil
}

// checkExpect validates one evaluate step against its expect clause.
func checkExpect(result *Result, index int, step Step, sieve algebra.Sieve) {
	if step.Expect == nil {
		return
	}
	got := string(sieve.Verdict())
	if got != step.Expect.Verdict {
		result.AddError(fmt.Sprintf(
			"steps[%d]: %s(%s) answered %s, expected %s",
			index, step.Evaluate.Observable, store.FormatValue(step.Evaluate.Eigenvalue),
			got, step.Expect.Verdict))
		return
	}
	if step.Expect.Size == "" || sieve.Verdict() == algebra.VerdictUndefined {
		return
	}
	gotSize := store.FormatSize(sieve.Size())
	if gotSize != step.Expect.Size {
		result.AddError(fmt.Sprintf(
			"steps[%d]: %s(%s) has size %s, expected %s",
			index, step.Evaluate.Observable, store.FormatValue(step.Evaluate.Eigenvalue),
			gotSize, step.Expect.Size))
	}
}
