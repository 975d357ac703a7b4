package corpus

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSink_TSVLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	require.NoError(t, Emit(context.Background(), sink, [][]string{
		{"the cat sleeps", "neko ga nemasu"},
		{"the dog runs", "inu ga hashirimasu"},
	}))
	require.NoError(t, sink.Close())

	assert.Equal(t,
		"the cat sleeps\tneko ga nemasu\nthe dog runs\tinu ga hashirimasu\n",
		buf.String())
}

func TestSQLiteSink_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "corpus.db")

	sink, err := NewSQLiteSink(ctx, path)
	require.NoError(t, err)
	runID := sink.RunID()
	assert.NotEmpty(t, runID)

	require.NoError(t, Emit(ctx, sink, [][]string{
		{"a0", "b0"},
		{"a1", "b1"},
		{"a2", "b2"},
	}))
	require.NoError(t, sink.Close())

	// Reopen and verify rows and ordering.
	verify, err := NewSQLiteSink(ctx, path)
	require.NoError(t, err)
	defer verify.Close()

	rows, err := verify.db.QueryContext(ctx,
		`SELECT idx, cascade, sentence FROM corpora WHERE run_id = ? ORDER BY idx, cascade`, runID)
	require.NoError(t, err)
	defer rows.Close()

	var got []string
	for rows.Next() {
		var idx, cascade int
		var sentence string
		require.NoError(t, rows.Scan(&idx, &cascade, &sentence))
		got = append(got, sentence)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"a0", "b0", "a1", "b1", "a2", "b2"}, got)
}

func TestSQLiteSink_DistinctRunIDs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "corpus.db")

	first, err := NewSQLiteSink(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, 0, []string{"x"}))
	require.NoError(t, first.Close())

	second, err := NewSQLiteSink(ctx, path)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.Put(ctx, 0, []string{"y"}))

	assert.NotEqual(t, first.RunID(), second.RunID())

	var n int
	require.NoError(t, second.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM corpora`).Scan(&n))
	assert.Equal(t, 2, n, "runs must not clobber each other")
}
