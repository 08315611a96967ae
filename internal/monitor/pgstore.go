package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retroharness/vicegrip/pkg/types"
)

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// appendTimeout bounds each insert so a stalled database cannot block a
// caller's terminal-outcome path for long.
const appendTimeout = 5 * time.Second

const migrateSQL = `
CREATE TABLE IF NOT EXISTS reliability_log (
	id            BIGSERIAL PRIMARY KEY,
	ts            TIMESTAMPTZ NOT NULL,
	tool          TEXT NOT NULL,
	duration_ms   DOUBLE PRECISION NOT NULL,
	success       BOOLEAN NOT NULL,
	error         TEXT,
	error_code    INTEGER,
	retry_count   INTEGER NOT NULL,
	fallback_used BOOLEAN NOT NULL
)`

// PostgresStore persists log entries to a PostgreSQL table, for deployments
// where reliability data from many hosts is analysed centrally. The JSONL
// [FileStore] remains the default sink.
//
// All operations are safe for concurrent use.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database at dsn, ensures the
// reliability_log table exists, and returns a ready store.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("monitor: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("monitor: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, migrateSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("monitor: migrate: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Append inserts entry as one row.
func (s *PostgresStore) Append(entry types.LogEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO reliability_log
			(ts, tool, duration_ms, success, error, error_code, retry_count, fallback_used)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`,
		entry.Timestamp, entry.Tool, entry.DurationMs, entry.Success,
		entry.Error, entry.ErrorCode, entry.RetryCount, entry.FallbackUsed,
	)
	if err != nil {
		return fmt.Errorf("monitor: insert entry: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
