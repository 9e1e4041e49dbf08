// Package compiler turns CUE system definitions into algebra values.
//
// A definition file declares a quantum system, its observables and the
// contexts that group them:
//
//	system: qubits: 1
//
//	observable: Z: {
//		matrix: [[[1, 0], [0, 0]], [[0, 0], [-1, 0]]]
//	}
//
//	context: ZBasis: {
//		members: ["Z"]
//	}
//
// Matrix entries are [re, im] pairs. CompileDefinitions fails fast and is
// what the evaluation path uses; Validate collects every problem and backs
// the validate command. Both surface algebraic obstructions (non-Hermitian
// operators, non-commuting context members) as definition errors, since a
// definition that cannot form a valid Context is a definition bug.
package compiler
