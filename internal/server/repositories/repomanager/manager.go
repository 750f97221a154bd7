package repomanager

import (
	"context"
	"database/sql"

	"github.com/msoler84/userhub/internal/dbx"
	"github.com/msoler84/userhub/internal/server/repositories/users"
	"github.com/msoler84/userhub/internal/server/repositories/usertypes"
)

// RepositoryManager vends repository implementations bound to a DBTX, so the
// same repository code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	UserTypes(db dbx.DBTX) usertypes.Repository
}
