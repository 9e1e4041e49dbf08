// Package numeric provides the dense complex-matrix backend for cstar.
//
// This package contains the linear-algebra boundary only. All other internal
// packages that touch operators import numeric; numeric imports nothing
// internal. This keeps the numeric collaborator a foundational layer with no
// circular dependencies, mirroring how the algebra treats it: something the
// logic calls into but does not own.
//
// Key design constraints:
//   - Matrices are immutable values: every operation returns a new Matrix.
//   - Two tolerance regimes, never mixed (see tolerance.go):
//     StructureTolerance (1e-9, absolute) for Hermitian/commutator checks,
//     CloseTo (rtol 1e-5 / atol 1e-8) for eigenvalue matching.
//   - The Hermitian eigensolver delegates to gonum's mat.EigenSym through
//     the real-symmetric embedding of a complex Hermitian matrix.
package numeric
