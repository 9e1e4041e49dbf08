// Package store provides SQLite-backed durable storage for cstar
// evaluation logs.
//
// The store is an append-only log of proposition evaluations: which
// observable was asked for which eigenvalue, under which context and scope,
// and what verdict came back. The algebra itself is never persisted -
// observables and contexts are reconstructed from definition files - the
// log records what was asked and answered.
//
// # Critical patterns
//
// Logical identity and time:
//   - Every record carries a seq INTEGER from a monotonic logical clock;
//     ordering never uses wall-clock timestamps.
//   - Record IDs are content-addressed: SHA-256 over RFC 8785 canonical
//     JSON with domain separation (see hash.go). Re-appending an identical
//     evaluation is a no-op.
//
// Deterministic reads:
//   - All queries order by seq ASC, id ASC COLLATE BINARY so a trace reads
//     back identically every time.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package store
