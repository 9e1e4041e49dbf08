// Package algebra implements the contextual truth-value algebra at the core
// of cstar: Observables, Contexts, Scopes and Sieves.
//
// An Observable is a named Hermitian operator. A Context is a validated set
// of mutually commuting Observables - a classical snapshot inside which
// propositions about its members are jointly meaningful. A Sieve is the
// three-valued truth value such a proposition evaluates to: a projector onto
// the subspace where the proposition holds, or the distinguished Undefined
// value marking a category error.
//
// # Scoped activation
//
// "The currently active context" is not ambient global state. Every line of
// execution owns a private Scope - an explicit activation stack - and passes
// it to Proposition. Entering a Context returns an Activation guard whose
// Exit must run in strict LIFO order:
//
//	scope := algebra.NewScope()
//	act := scope.Enter(zBasis)
//	defer act.Exit()
//
//	sieve := z.Proposition(scope, 1)
//
// Because Scopes are per-goroutine values rather than shared state,
// concurrent flows cannot corrupt each other's notion of the active context.
//
// # Three-valued logic
//
// Sieve is a sealed interface with exactly two implementations: Undefined
// and Projector. The combinators Not, And and Or pattern-match the tag
// before touching any matrix: once a computation is poisoned by Undefined,
// every combination with it stays Undefined.
//
// # Obstructions
//
// Construction-time violations of physical law (a non-Hermitian operator, a
// non-commuting pair inside a Context) fail immediately with an
// *ObstructionError naming the offenders. Proposition never fails: asking a
// question outside its Context degrades to Undefined instead.
package algebra
