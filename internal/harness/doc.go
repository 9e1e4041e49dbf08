// Package harness runs YAML measurement scenarios against the algebra.
//
// A scenario names a directory of CUE definitions, a sequence of steps
// (enter a context, evaluate a proposition, exit a context) and a set of
// assertions over the recorded trace. Each run gets a fresh in-memory
// store, a fixed scope token and a zero-started clock, so the same
// scenario always produces byte-identical traces; RunWithGolden pins that
// trace against a golden file under testdata/golden.
//
// Steps execute against a real Session - the harness does not manufacture
// records. An expect clause that disagrees with what the algebra actually
// answered fails the run.
package harness
