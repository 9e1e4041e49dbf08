package algebra

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Scope is the activation stack resolving "the currently active Context".
//
// A Scope is deliberately NOT process-wide state. Each independent line of
// execution (goroutine, request, test) creates its own Scope and threads it
// through explicitly; two goroutines sharing one Scope is a correctness bug,
// not a supported mode. Because every unit's first Enter establishes a
// private stack, concurrent context nesting in different units cannot
// corrupt each other's view of the active Context - without any locking.
//
// Scope methods tolerate a nil receiver, which reads as "no active context".
// This lets Proposition accept a nil Scope for context-free evaluation.
type Scope struct {
	token string
	stack []*Context
}

// NewScope creates an empty Scope with a fresh identity token.
//
// The token attributes evaluation-trace records to the execution unit that
// produced them; it plays no role in the logic itself.
func NewScope() *Scope {
	return &Scope{token: uuid.NewString()}
}

// NewScopeWithToken creates an empty Scope with a caller-chosen token.
// Harness scenarios and golden-trace tests use fixed tokens so that the
// same scenario produces byte-identical traces across runs.
func NewScopeWithToken(token string) *Scope {
	if token == "" {
		return NewScope()
	}
	return &Scope{token: token}
}

// Token returns the scope's identity token, or "" for a nil Scope.
func (s *Scope) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// Current returns the Context on top of the activation stack. The second
// return is false when no Context is active (or the Scope is nil).
func (s *Scope) Current() (*Context, bool) {
	if s == nil || len(s.stack) == 0 {
		return nil, false
	}
	return s.stack[len(s.stack)-1], true
}

// Depth returns the number of active (nested) Contexts.
func (s *Scope) Depth() int {
	if s == nil {
		return 0
	}
	return len(s.stack)
}

// Enter activates ctx as the new top of the stack and returns the guard
// that deactivates it. Entering the same Context twice is legal and
// produces two stack entries.
//
// Every Enter must be matched by exactly one Exit on the returned
// Activation, in strict LIFO order, including on failure paths that unwind
// through the scope:
//
//	act := scope.Enter(ctx)
//	defer act.Exit()
func (s *Scope) Enter(ctx *Context) *Activation {
	if s == nil {
		panic("algebra: Enter on nil Scope")
	}
	if ctx == nil {
		panic("algebra: Enter with nil Context")
	}
	s.stack = append(s.stack, ctx)
	return &Activation{scope: s, context: ctx}
}

// Activation is the guard returned by Scope.Enter. It deactivates its
// Context exactly once, and only while that Context is on top of the stack.
type Activation struct {
	scope   *Scope
	context *Context
	exited  bool
}

// Context returns the Context this activation entered.
func (a *Activation) Context() *Context { return a.context }

// Exit pops this activation's Context off the scope stack.
//
// Exit panics on contract violations - exiting twice, or exiting out of
// LIFO order - in the same way sync.Mutex panics on unlocking an unlocked
// mutex. The design assumes well-nested scoped use and does not defend
// against interleaved misuse beyond refusing to corrupt the stack.
func (a *Activation) Exit() {
	if a.exited {
		panic("algebra: Activation exited twice")
	}
	top, ok := a.scope.Current()
	if !ok {
		panic("algebra: Exit on empty scope")
	}
	if top != a.context {
		panic(fmt.Sprintf("algebra: out-of-order Exit: %v is active, activation holds %v", top, a.context))
	}
	a.scope.stack = a.scope.stack[:len(a.scope.stack)-1]
	a.exited = true
}

// scopeKey is the context.Context key for a carried Scope.
type scopeKey struct{}

// WithScope returns a copy of parent carrying s, so call trees that already
// thread a context.Context need not grow an extra parameter.
func WithScope(parent context.Context, s *Scope) context.Context {
	return context.WithValue(parent, scopeKey{}, s)
}

// ScopeFrom returns the Scope carried by ctx, or nil if none is carried.
// A nil result is safe to use directly: it reads as "no active context".
// Execution units that need activations must establish their own Scope via
// NewScope and WithScope.
func ScopeFrom(ctx context.Context) *Scope {
	s, _ := ctx.Value(scopeKey{}).(*Scope)
	return s
}
