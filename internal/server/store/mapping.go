package store

import (
	"context"

	"github.com/msoler84/userhub/internal/dbx"
)

// RowScanner is satisfied by both *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// RelationLoader eagerly loads one named relation for a batch of entities,
// attaching the related records in place. Batching avoids N+1 lookups.
type RelationLoader[E any] func(ctx context.Context, db dbx.DBTX, items []*E) error

// Mapping binds an entity triple (entity, create input, update input) to its
// table. It is the only per-entity code the generic store needs.
type Mapping[E, C, U any] struct {
	// Table is the relation name.
	Table string

	// Columns is the select list, in scan order.
	Columns []string

	// Scan reads one row into a fresh entity.
	Scan func(row RowScanner) (*E, error)

	// Insert extracts the column names and values persisted on create.
	Insert func(in *C) ([]string, []any)

	// Update extracts only the columns present in the partial update.
	Update func(in *U) ([]string, []any)

	// ID returns the entity's primary key.
	ID func(e *E) int64

	// Relations maps prefetchable relation names to their loaders.
	Relations map[string]RelationLoader[E]
}
