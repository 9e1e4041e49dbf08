package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(t *testing.T, scope, ctxName, observable string, eigenvalue float64, verdict string, size string, seq int64) Record {
	t.Helper()
	rec := Record{
		ScopeToken:  scope,
		ContextName: ctxName,
		Observable:  observable,
		Eigenvalue:  FormatValue(eigenvalue),
		Verdict:     verdict,
		Size:        size,
		Seq:         seq,
	}
	id, err := RecordID(rec)
	require.NoError(t, err)
	rec.ID = id
	return rec
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestAppendEvaluation_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := testRecord(t, "scope-1", "Z-basis", "Z", 1, "proper", "1", 1)
	require.NoError(t, s.AppendEvaluation(ctx, rec))

	got, err := s.ReadEvaluations(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}

func TestAppendEvaluation_IdempotentByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := testRecord(t, "scope-1", "Z-basis", "Z", 1, "proper", "1", 1)
	require.NoError(t, s.AppendEvaluation(ctx, rec))
	require.NoError(t, s.AppendEvaluation(ctx, rec))

	got, err := s.ReadEvaluations(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1, "content-addressed duplicates must be silently dropped")
}

func TestAppendEvaluation_RequiresID(t *testing.T) {
	s := openTestStore(t)

	err := s.AppendEvaluation(context.Background(), Record{Observable: "Z"})
	assert.Error(t, err)
}

func TestReadEvaluations_Filters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	records := []Record{
		testRecord(t, "scope-1", "Z-basis", "Z", 1, "proper", "1", 1),
		testRecord(t, "scope-1", "Z-basis", "X", 1, "undefined", "", 2),
		testRecord(t, "scope-2", "", "X", 1, "proper", "1", 3),
		testRecord(t, "scope-2", "Z-basis", "Z", 2, "min", "0", 4),
	}
	for _, rec := range records {
		require.NoError(t, s.AppendEvaluation(ctx, rec))
	}

	testCases := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"by_scope", Filter{ScopeToken: "scope-1"}, 2},
		{"by_context", Filter{ContextName: "Z-basis"}, 3},
		{"by_observable", Filter{Observable: "X"}, 2},
		{"by_verdict", Filter{Verdict: "undefined"}, 1},
		{"combined", Filter{ScopeToken: "scope-2", Observable: "Z"}, 1},
		{"no_match", Filter{ContextName: "X-basis"}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ReadEvaluations(ctx, tc.filter)
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
			assert.NotNil(t, got, "empty result must be a slice, not nil")
		})
	}
}

func TestReadEvaluations_DeterministicOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Insert out of seq order; reads must come back in seq order.
	r3 := testRecord(t, "scope-1", "C", "Z", 1, "proper", "1", 3)
	r1 := testRecord(t, "scope-1", "C", "Z", 2, "min", "0", 1)
	r2 := testRecord(t, "scope-1", "C", "Z", 3, "min", "0", 2)
	for _, rec := range []Record{r3, r1, r2} {
		require.NoError(t, s.AppendEvaluation(ctx, rec))
	}

	got, err := s.ReadEvaluations(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].Seq)
	assert.Equal(t, int64(2), got[1].Seq)
	assert.Equal(t, int64(3), got[2].Seq)
}

func TestMaxSeq(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seq, err := s.MaxSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq, "empty log reports 0")

	require.NoError(t, s.AppendEvaluation(ctx, testRecord(t, "s", "", "Z", 1, "proper", "1", 7)))

	seq, err = s.MaxSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)
}

func TestClock(t *testing.T) {
	c := NewClock()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())

	resumed := NewClockAt(10)
	assert.Equal(t, int64(11), resumed.Next())
}
