package store

import (
	"context"
	"fmt"
	"strings"
)

// Filter narrows an evaluation-log read. Zero-value fields match
// everything; set fields are AND-combined.
//
// The filter deliberately covers the trace questions this domain asks -
// "what was evaluated in this context", "what did this observable answer",
// "show me the category errors" - rather than exposing a general query
// language.
type Filter struct {
	// ScopeToken matches records from one execution unit.
	ScopeToken string

	// ContextName matches records evaluated under one Context.
	ContextName string

	// Observable matches records about one operator.
	Observable string

	// Verdict matches one verdict class: undefined, min, max or proper.
	Verdict string
}

// ReadEvaluations returns log records matching the filter in deterministic
// order: seq ASC, id ASC COLLATE BINARY. Returns an empty slice (not nil)
// when nothing matches.
func (s *Store) ReadEvaluations(ctx context.Context, filter Filter) ([]Record, error) {
	query := `
		SELECT id, scope_token, context_name, observable, eigenvalue, verdict, size, seq
		FROM evaluations
	`
	var clauses []string
	var args []any

	if filter.ScopeToken != "" {
		clauses = append(clauses, "scope_token = ?")
		args = append(args, filter.ScopeToken)
	}
	if filter.ContextName != "" {
		clauses = append(clauses, "context_name = ?")
		args = append(args, filter.ContextName)
	}
	if filter.Observable != "" {
		clauses = append(clauses, "observable = ?")
		args = append(args, filter.Observable)
	}
	if filter.Verdict != "" {
		clauses = append(clauses, "verdict = ?")
		args = append(args, filter.Verdict)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY seq ASC, id COLLATE BINARY ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID,
			&rec.ScopeToken,
			&rec.ContextName,
			&rec.Observable,
			&rec.Eigenvalue,
			&rec.Verdict,
			&rec.Size,
			&rec.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}

	return records, nil
}
