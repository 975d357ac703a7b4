package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Sink accepts generated tuples for output. The core only produces in-memory
// strings; sinks are how the CLI gets them onto disk.
type Sink interface {
	// Put receives the tuple for one sample index. Indices arrive in
	// ascending order.
	Put(ctx context.Context, index int, sentences []string) error
	Close() error
}

// WriterSink writes one tab-separated line per sample to an io.Writer.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink wraps a writer. The sink does not own the writer; Close is a
// no-op.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Put(_ context.Context, _ int, sentences []string) error {
	_, err := fmt.Fprintln(s.w, strings.Join(sentences, "\t"))
	return err
}

func (s *WriterSink) Close() error {
	return nil
}

// SQLiteSink persists tuples into a SQLite corpus database. Every sink
// instance writes under a fresh run ID, so repeated generations into the same
// file stay distinguishable.
type SQLiteSink struct {
	db    *sql.DB
	runID string
}

const corpusSchema = `
CREATE TABLE IF NOT EXISTS corpora (
	run_id   TEXT    NOT NULL,
	idx      INTEGER NOT NULL,
	cascade  INTEGER NOT NULL,
	sentence TEXT    NOT NULL,
	PRIMARY KEY (run_id, idx, cascade)
);
CREATE INDEX IF NOT EXISTS idx_corpora_run ON corpora(run_id);
`

// NewSQLiteSink opens (creating if needed) the corpus database at path and
// ensures the schema.
func NewSQLiteSink(ctx context.Context, path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, corpusSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("corpus: ensure schema: %w", err)
	}
	return &SQLiteSink{db: db, runID: uuid.NewString()}, nil
}

// RunID returns the identifier rows from this sink are written under.
func (s *SQLiteSink) RunID() string {
	return s.runID
}

func (s *SQLiteSink) Put(ctx context.Context, index int, sentences []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("corpus: begin tx: %w", err)
	}
	for c, sentence := range sentences {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO corpora (run_id, idx, cascade, sentence) VALUES (?, ?, ?, ?)`,
			s.runID, index, c, sentence); err != nil {
			tx.Rollback()
			return fmt.Errorf("corpus: insert sample %d: %w", index, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Emit pushes a generated batch through a sink in ascending index order.
func Emit(ctx context.Context, sink Sink, tuples [][]string) error {
	for i, tuple := range tuples {
		if err := sink.Put(ctx, i, tuple); err != nil {
			return err
		}
	}
	return nil
}
