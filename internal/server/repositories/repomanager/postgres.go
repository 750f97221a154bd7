// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/msoler84/userhub/internal/dbx"
	"github.com/msoler84/userhub/internal/server/auth"
	"github.com/msoler84/userhub/internal/server/migrations"
	"github.com/msoler84/userhub/internal/server/repositories/users"
	"github.com/msoler84/userhub/internal/server/repositories/usertypes"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook. The hasher and token service are shared
// by every users.Repository it hands out.
type PostgresRepositoryManager struct {
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewStore(db, m.hasher, m.tokens)
}

// UserTypes returns a usertypes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) UserTypes(db dbx.DBTX) usertypes.Repository {
	return usertypes.NewStore(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(hasher *auth.PasswordHasher, tokens *auth.TokenService) (RepositoryManager, error) {
	return &PostgresRepositoryManager{hasher: hasher, tokens: tokens}, nil
}
