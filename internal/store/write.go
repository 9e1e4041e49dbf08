package store

import (
	"context"
	"fmt"
)

// AppendEvaluation inserts an evaluation record into the log.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: because IDs are
// content-addressed, appending the same evaluation twice is a silent no-op.
func (s *Store) AppendEvaluation(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("append evaluation: record has no ID")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, scope_token, context_name, observable, eigenvalue, verdict, size, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.ScopeToken,
		rec.ContextName,
		rec.Observable,
		rec.Eigenvalue,
		rec.Verdict,
		rec.Size,
		rec.Seq,
	)
	if err != nil {
		return fmt.Errorf("append evaluation: %w", err)
	}

	return nil
}

// MaxSeq returns the highest sequence number in the log, or 0 for an empty
// log. Used to resume a Clock over an existing database.
func (s *Store) MaxSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM evaluations
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("max seq: %w", err)
	}
	return seq, nil
}
