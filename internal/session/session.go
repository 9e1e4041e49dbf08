// Package session binds a Scope, a logical clock and an optional store into
// a recorded evaluation session.
//
// The algebra itself is silent: Proposition reads the scope and returns a
// Sieve, nothing more. A Session wraps that call so each evaluation is
// stamped with a monotonic seq and, when a store is attached, appended to
// the durable evaluation log. The core stays synchronous - there is no
// event loop, just stamp-and-persist around each call.
package session

import (
	"context"
	"fmt"

	"github.com/tarikhrnjica/cstar/internal/algebra"
	"github.com/tarikhrnjica/cstar/internal/store"
)

// Session runs proposition evaluations under one Scope, recording each to
// the attached store.
//
// A Session belongs to a single line of execution, like the Scope it wraps;
// it is not safe for concurrent use.
type Session struct {
	scope *algebra.Scope
	clock *store.Clock
	log   *store.Store
}

// New creates a Session over a fresh Scope. A nil log disables recording;
// evaluations still run and are still stamped.
func New(log *store.Store) *Session {
	return &Session{
		scope: algebra.NewScope(),
		clock: store.NewClock(),
		log:   log,
	}
}

// NewWithScope creates a Session over a caller-provided Scope and clock.
// Harness runs use this with fixed scope tokens and a resumed clock for
// deterministic traces.
func NewWithScope(scope *algebra.Scope, clock *store.Clock, log *store.Store) *Session {
	if scope == nil {
		scope = algebra.NewScope()
	}
	if clock == nil {
		clock = store.NewClock()
	}
	return &Session{scope: scope, clock: clock, log: log}
}

// Scope returns the session's Scope, for entering and exiting Contexts.
func (s *Session) Scope() *algebra.Scope { return s.scope }

// Evaluate runs obs.Proposition(eigenvalue) under the session scope,
// stamps the result and appends it to the log when one is attached.
//
// The Sieve is returned even when recording fails; the error reports only
// the persistence problem.
func (s *Session) Evaluate(ctx context.Context, obs *algebra.Observable, eigenvalue float64) (algebra.Sieve, error) {
	current, _ := s.scope.Current()
	result := obs.Proposition(s.scope, eigenvalue)
	seq := s.clock.Next()

	if s.log == nil {
		return result, nil
	}

	rec, err := store.NewRecord(s.scope.Token(), current, obs.Name(), eigenvalue, result, seq)
	if err != nil {
		return result, fmt.Errorf("session: record evaluation: %w", err)
	}
	if err := s.log.AppendEvaluation(ctx, rec); err != nil {
		return result, fmt.Errorf("session: %w", err)
	}
	return result, nil
}
