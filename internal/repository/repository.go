package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned by FindByID when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidReference is returned when a save points at a row that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrConflict is returned when a write collides with an existing unique value.
	ErrConflict = errors.New("record conflicts with an existing one")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// translateError maps driver errors onto the repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		}
	}
	return err
}

// upsertWithID runs an insert-or-update that carries a caller-supplied id and
// moves the table's identity sequence past it so later inserts do not collide.
// Explicit-id writes on a table are serialized so two of them cannot race
// on the sequence.
func upsertWithID(ctx context.Context, pool *pgxpool.Pool, table string, id int64, query string, args []any, dest ...any) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, lockSequenceSQL, table); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, advanceSequenceSQL(table), id)
		return err
	})
}

const lockSequenceSQL = `SELECT pg_advisory_xact_lock(hashtext($1))`

// advanceSequenceSQL moves the sequence to id only when id is ahead of it, so
// the sequence never goes backward. Sequence state is not transactional, so
// last_value already covers ids handed to inserts that have not committed.
func advanceSequenceSQL(table string) string {
	seq := fmt.Sprintf("pg_get_serial_sequence('%s', 'id')", table)
	return fmt.Sprintf(
		`SELECT CASE WHEN $1::bigint > COALESCE(pg_sequence_last_value(%[1]s::regclass), 0) `+
			`THEN setval(%[1]s, $1::bigint) END`,
		seq,
	)
}
