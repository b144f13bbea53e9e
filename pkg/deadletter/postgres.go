package deadletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayforge/hotelops/pkg/pg"
	"github.com/stayforge/hotelops/pkg/queue"
)

// DefaultPostgresTable is the table PostgresSink writes to. The schema is
// created by the dead_letter_entries migration.
const DefaultPostgresTable = "dead_letter_entries"

// PostgresSink persists dead letters in a PostgreSQL table, keeping the full
// job as JSONB so operators can inspect payloads with plain SQL.
type PostgresSink struct {
	pool  *pgxpool.Pool
	table string
}

// PostgresSinkOption configures a PostgresSink.
type PostgresSinkOption func(*PostgresSink)

// WithPostgresTable overrides the target table name.
func WithPostgresTable(table string) PostgresSinkOption {
	return func(s *PostgresSink) {
		if table != "" {
			s.table = table
		}
	}
}

// NewPostgresSink creates a sink backed by the given connection pool.
func NewPostgresSink(pool *pgxpool.Pool, opts ...PostgresSinkOption) (*PostgresSink, error) {
	if pool == nil {
		return nil, fmt.Errorf("%w: nil connection pool", ErrFailedToCreateSink)
	}

	s := &PostgresSink{pool: pool, table: DefaultPostgresTable}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *PostgresSink) Store(ctx context.Context, entry queue.DeadLetter) error {
	job, err := json.Marshal(entry.Job)
	if err != nil {
		return errors.Join(ErrFailedToStoreEntry, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, queue, job, error, failed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.table)

	if _, err := s.pool.Exec(ctx, query,
		entry.Job.ID,
		entry.Job.Queue,
		job,
		entry.Error,
		entry.FailedAt,
	); err != nil {
		// Replays of the same entry are fine; the first write won.
		if pg.IsDuplicateKeyError(err) {
			return nil
		}
		return errors.Join(ErrFailedToStoreEntry, err)
	}
	return nil
}

func (s *PostgresSink) List(ctx context.Context, queueName string, limit int) ([]queue.DeadLetter, error) {
	query := fmt.Sprintf(`SELECT job, error, failed_at FROM %s`, s.table)
	args := make([]any, 0, 2)

	if queueName != "" {
		args = append(args, queueName)
		query += fmt.Sprintf(" WHERE queue = $%d", len(args))
	}
	query += " ORDER BY failed_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrFailedToListEntries, err)
	}
	defer rows.Close()

	var entries []queue.DeadLetter
	for rows.Next() {
		var (
			entry queue.DeadLetter
			job   []byte
		)
		if err := rows.Scan(&job, &entry.Error, &entry.FailedAt); err != nil {
			return nil, errors.Join(ErrFailedToListEntries, err)
		}
		if err := json.Unmarshal(job, &entry.Job); err != nil {
			return nil, errors.Join(ErrFailedToDecodeEntry, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToListEntries, err)
	}

	return entries, nil
}

var _ queue.DeadLetterSink = (*PostgresSink)(nil)
