// Package store implements a type-parameterized persistence facade shared by
// every entity repository: filtered listing with offset pagination, creation,
// partial update, point lookup, deletion, and counting. It adds no locking or
// retries on top of the database's own transaction guarantees.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/msoler84/userhub/internal/common"
	"github.com/msoler84/userhub/internal/dbx"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// Filter is an equality-conjunction predicate over entity columns: every
// key/value pair must match (ANDed).
type Filter map[string]any

// Store is the generic data-access layer for one entity. It works over
// dbx.DBTX, so the same instance runs against *sql.DB or inside *sql.Tx.
type Store[E, C, U any] struct {
	db dbx.DBTX
	m  Mapping[E, C, U]
}

func New[E, C, U any](db dbx.DBTX, m Mapping[E, C, U]) *Store[E, C, U] {
	return &Store[E, C, U]{db: db, m: m}
}

// List returns entities matching filter, ordered by id, skipping skip rows
// and returning at most limit. Named relations are prefetched after the main
// query. This layer enforces no upper bound on limit; callers must bound it.
func (s *Store[E, C, U]) List(ctx context.Context, filter Filter, skip, limit int, prefetch ...string) ([]*E, error) {
	if skip < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: skip must be non-negative and limit positive", common.ErrValidation)
	}

	where, args := whereClause(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id OFFSET $%d LIMIT $%d",
		strings.Join(s.m.Columns, ", "), s.m.Table, where, len(args)+1, len(args)+2)
	args = append(args, skip, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	items := make([]*E, 0, limit)
	for rows.Next() {
		e, err := s.m.Scan(rows)
		if err != nil {
			return nil, classify(err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	for _, name := range prefetch {
		loader, ok := s.m.Relations[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown relation %q", common.ErrValidation, name)
		}
		if err := loader(ctx, s.db, items); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// Create inserts a new record and returns the persisted entity, re-fetched
// by generated id so database-side defaults and audit timestamps are filled.
func (s *Store[E, C, U]) Create(ctx context.Context, in *C) (*E, error) {
	cols, vals := s.m.Insert(in)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		s.m.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	var id int64
	if err := s.db.QueryRowContext(ctx, query, vals...).Scan(&id); err != nil {
		return nil, classify(err)
	}

	created, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("refetch after insert: %w", common.ErrNotFound)
	}
	return created, nil
}

// Update applies only the columns present in the partial input and returns
// the refreshed entity fetched by id, guarding against stale in-memory state.
// An input with no set fields is a no-op refresh.
func (s *Store[E, C, U]) Update(ctx context.Context, existing *E, in *U) (*E, error) {
	id := s.m.ID(existing)

	cols, vals := s.m.Update(in)
	if len(cols) > 0 {
		set := make([]string, len(cols))
		for i, c := range cols {
			set[i] = fmt.Sprintf("%s = $%d", c, i+1)
		}
		query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
			s.m.Table, strings.Join(set, ", "), len(cols)+1)

		if _, err := s.db.ExecContext(ctx, query, append(vals, id)...); err != nil {
			return nil, classify(err)
		}
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, common.ErrNotFound
	}
	return updated, nil
}

// Delete removes the record and returns the number of rows removed: 1, or 0
// when the record had already vanished. Double-delete is not an error.
func (s *Store[E, C, U]) Delete(ctx context.Context, existing *E) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.m.Table)

	res, err := s.db.ExecContext(ctx, query, s.m.ID(existing))
	if err != nil {
		return 0, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// GetByID returns the entity with the given id, or (nil, nil) when absent.
// Absence is a normal outcome here, not a failure.
func (s *Store[E, C, U]) GetByID(ctx context.Context, id int64) (*E, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1",
		strings.Join(s.m.Columns, ", "), s.m.Table)

	e, err := s.m.Scan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err)
	}
	return e, nil
}

// Count returns the number of records matching filter, with the same filter
// semantics as List.
func (s *Store[E, C, U]) Count(ctx context.Context, filter Filter) (int64, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf("SELECT count(*) FROM %s%s", s.m.Table, where)

	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// whereClause renders a deterministic WHERE fragment (keys sorted) and the
// matching argument list. An empty filter yields an empty fragment.
func whereClause(filter Filter) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		conds[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args[i] = filter[k]
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// classify maps driver errors onto the shared sentinels: unique violations
// become ErrConflict, other server-reported SQL errors keep their detail, and
// anything else (connection loss, timeouts) is ErrStorageUnavailable.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, common.ErrConflict)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
}
