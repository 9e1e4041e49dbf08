package algebra

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, name string) *Context {
	t.Helper()
	z := pauliZ(t)
	ctx, err := NewContext(name, []*Observable{z})
	require.NoError(t, err)
	return ctx
}

func TestScope_EmptyHasNoCurrent(t *testing.T) {
	scope := NewScope()

	current, ok := scope.Current()
	assert.False(t, ok)
	assert.Nil(t, current)
	assert.Equal(t, 0, scope.Depth())
}

func TestScope_NilReadsAsNoContext(t *testing.T) {
	var scope *Scope

	current, ok := scope.Current()
	assert.False(t, ok)
	assert.Nil(t, current)
	assert.Equal(t, 0, scope.Depth())
	assert.Equal(t, "", scope.Token())
}

func TestScope_EnterExit(t *testing.T) {
	scope := NewScope()
	c1 := testContext(t, "C1")

	act := scope.Enter(c1)
	current, ok := scope.Current()
	require.True(t, ok)
	assert.Same(t, c1, current)
	assert.Equal(t, 1, scope.Depth())

	act.Exit()
	_, ok = scope.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, scope.Depth())
}

func TestScope_NestedActivations(t *testing.T) {
	scope := NewScope()
	c1 := testContext(t, "C1")
	c2 := testContext(t, "C2")

	a1 := scope.Enter(c1)
	a2 := scope.Enter(c2)

	current, _ := scope.Current()
	assert.Same(t, c2, current, "innermost context wins")

	a2.Exit()
	current, _ = scope.Current()
	assert.Same(t, c1, current, "exiting restores the outer context")

	a1.Exit()
	_, ok := scope.Current()
	assert.False(t, ok, "exiting twice restores no-active-context")
}

func TestScope_ReentrantSameContext(t *testing.T) {
	scope := NewScope()
	c1 := testContext(t, "C1")

	a1 := scope.Enter(c1)
	a2 := scope.Enter(c1)
	assert.Equal(t, 2, scope.Depth(), "re-entering the same context produces two entries")

	a2.Exit()
	a1.Exit()
	assert.Equal(t, 0, scope.Depth())
}

func TestActivation_ExitTwicePanics(t *testing.T) {
	scope := NewScope()
	act := scope.Enter(testContext(t, "C1"))
	act.Exit()

	assert.Panics(t, func() { act.Exit() })
}

func TestActivation_OutOfOrderExitPanics(t *testing.T) {
	scope := NewScope()
	a1 := scope.Enter(testContext(t, "C1"))
	a2 := scope.Enter(testContext(t, "C2"))

	assert.Panics(t, func() { a1.Exit() }, "exiting the outer activation first violates LIFO")

	// The stack must be intact: the inner activation still exits cleanly.
	a2.Exit()
	a1.Exit()
	assert.Equal(t, 0, scope.Depth())
}

func TestScope_PerGoroutineIsolation(t *testing.T) {
	// Each goroutine owns a private scope; nesting in one unit must never
	// become visible in another.
	c1 := testContext(t, "C1")
	c2 := testContext(t, "C2")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		ctx := c1
		if i%2 == 1 {
			ctx = c2
		}
		wg.Add(1)
		go func(own *Context) {
			defer wg.Done()
			scope := NewScope()
			for j := 0; j < 100; j++ {
				act := scope.Enter(own)
				current, ok := scope.Current()
				if !ok || current != own {
					errs <- assert.AnError
				}
				act.Exit()
			}
			if scope.Depth() != 0 {
				errs <- assert.AnError
			}
		}(ctx)
	}

	wg.Wait()
	close(errs)
	assert.Empty(t, errs, "concurrent scopes corrupted each other")
}

func TestScope_TokensAreUnique(t *testing.T) {
	assert.NotEqual(t, NewScope().Token(), NewScope().Token())
}

func TestWithScope_RoundTrip(t *testing.T) {
	scope := NewScope()
	ctx := WithScope(context.Background(), scope)

	assert.Same(t, scope, ScopeFrom(ctx))
	assert.Nil(t, ScopeFrom(context.Background()))
}

func TestScopeFrom_NilScopeUsableInProposition(t *testing.T) {
	// A call tree without an established scope evaluates context-free.
	z := pauliZ(t)
	s := z.Proposition(ScopeFrom(context.Background()), 1)
	assert.Equal(t, VerdictProper, s.Verdict())
}
