package pg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrInvalidDSN reports an unparseable connection string.
	ErrInvalidDSN = errors.New("pg: invalid connection string")

	// ErrConnect reports that the database never became reachable within
	// the retry budget.
	ErrConnect = errors.New("pg: failed to connect")

	// ErrHealthcheck reports a failed readiness ping.
	ErrHealthcheck = errors.New("pg: healthcheck failed")

	// ErrMigrate reports a failed schema migration run.
	ErrMigrate = errors.New("pg: failed to apply migrations")
)

// IsDuplicateKeyError reports whether err is a unique constraint violation
// (SQLSTATE 23505), which writers treat as "already stored".
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
