package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/msoler84/userhub/internal/server/auth"
	"github.com/msoler84/userhub/internal/server/repositories/users"
	"github.com/msoler84/userhub/internal/server/repositories/usertypes"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newManager(t *testing.T) *PostgresRepositoryManager {
	t.Helper()
	hasher := auth.NewPasswordHasher(4)
	tokens := auth.NewTokenService([]byte("secret"), time.Minute)
	m, err := NewPostgresRepositoryManager(hasher, tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m.(*PostgresRepositoryManager)
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	var _ RepositoryManager = newManager(t)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := newManager(t)

	if u := m.Users(db); u == nil {
		t.Fatal("Users() nil")
	}
	if ut := m.UserTypes(db); ut == nil {
		t.Fatal("UserTypes() nil")
	}

	var _ users.Repository = m.Users(db)
	var _ usertypes.Repository = m.UserTypes(db)
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := newManager(t)
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := newManager(t)
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
