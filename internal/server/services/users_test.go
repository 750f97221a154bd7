package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/msoler84/userhub/internal/dbx"
	"github.com/msoler84/userhub/internal/server/config"
	"github.com/msoler84/userhub/internal/server/models"
	"github.com/msoler84/userhub/internal/server/repositories/users"
	"github.com/msoler84/userhub/internal/server/repositories/usertypes"
	"github.com/msoler84/userhub/internal/server/store"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	listFilter store.Filter
	listSkip   int
	listLimit  int
	listOut    []*models.UserView
	listErr    error

	getOut *models.UserView
	getErr error

	createIn  *models.UserCreate
	createOut *models.UserSummary
	createErr error

	updateIn    *models.UserUpdate
	updateActor string
	updateOut   *models.UserView
	updateErr   error

	disableIn  *models.UserUpdate
	disableOut bool
	disableErr error

	countFilter store.Filter
	countOut    int64
	countErr    error
}

func (f *fakeUsersRepo) List(ctx context.Context, filter store.Filter, skip, limit int) ([]*models.UserView, error) {
	f.listFilter, f.listSkip, f.listLimit = filter, skip, limit
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.UserView, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) Create(ctx context.Context, in *models.UserCreate) (*models.UserSummary, error) {
	f.createIn = in
	return f.createOut, f.createErr
}

func (f *fakeUsersRepo) Update(ctx context.Context, id int64, in *models.UserUpdate, actingUser string) (*models.UserView, error) {
	f.updateIn, f.updateActor = in, actingUser
	return f.updateOut, f.updateErr
}

func (f *fakeUsersRepo) Disable(ctx context.Context, id int64, in *models.UserUpdate) (bool, error) {
	f.disableIn = in
	return f.disableOut, f.disableErr
}

func (f *fakeUsersRepo) Count(ctx context.Context, filter store.Filter) (int64, error) {
	f.countFilter = filter
	return f.countOut, f.countErr
}

type fakeRepoManager struct {
	users     users.Repository
	userTypes usertypes.Repository
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository { return f.users }

func (f *fakeRepoManager) UserTypes(dbx.DBTX) usertypes.Repository { return f.userTypes }

func newUserService(t *testing.T, db *sql.DB, repo users.Repository, cfg *config.Config) *UserService {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	return NewUserService(db, &fakeRepoManager{users: repo}, cfg)
}

// --- tests ---

func TestListUsers_ForcesActiveFilter(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{listOut: []*models.UserView{{ID: 1}}}
	svc := newUserService(t, db, repo, nil)

	out, err := svc.ListUsers(context.Background(), nil, 0, 10)
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 user, got %d", len(out))
	}
	if got, ok := repo.listFilter["is_active"]; !ok || got != true {
		t.Fatalf("expected is_active=true in filter, got %v", repo.listFilter)
	}
	if _, ok := repo.listFilter["user_type_id"]; ok {
		t.Fatal("user_type_id should be absent without an explicit narrow")
	}
}

func TestListUsers_NarrowsByUserType(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{}
	svc := newUserService(t, db, repo, nil)

	userTypeID := int64(7)
	if _, err := svc.ListUsers(context.Background(), &userTypeID, 0, 10); err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if got := repo.listFilter["user_type_id"]; got != int64(7) {
		t.Fatalf("expected user_type_id=7, got %v", got)
	}
}

func TestListUsers_NormalizesPagination(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{}
	svc := newUserService(t, db, repo, nil)

	if _, err := svc.ListUsers(context.Background(), nil, -5, 0); err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if repo.listSkip != 0 || repo.listLimit != defaultListLimit {
		t.Fatalf("expected skip=0 limit=%d, got skip=%d limit=%d",
			defaultListLimit, repo.listSkip, repo.listLimit)
	}

	if _, err := svc.ListUsers(context.Background(), nil, 0, 1000); err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if repo.listLimit != maxListLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxListLimit, repo.listLimit)
	}
}

func TestCreateUser_StampsAudit(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	email := "a@x.com"
	userTypeID := int64(1)
	repo := &fakeUsersRepo{createOut: &models.UserSummary{ID: 10, Email: &email, UserTypeID: &userTypeID}}
	svc := newUserService(t, db, repo, nil)

	before := time.Now().UTC()
	summary, err := svc.CreateUser(context.Background(), "a@x.com", "p1", &userTypeID, "admin")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if summary.ID != 10 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	in := repo.createIn
	if in.Email != "a@x.com" || in.Password != "p1" || *in.UserTypeID != 1 {
		t.Fatalf("unexpected create input: %+v", in)
	}
	if in.AddedBy != "admin" {
		t.Fatalf("expected added_by=admin, got %q", in.AddedBy)
	}
	if in.AddedOn.Before(before) || in.AddedOn.After(time.Now().UTC()) {
		t.Fatalf("added_on not stamped with current time: %v", in.AddedOn)
	}
}

func TestDisableUser_BuildsSoftDeleteUpdate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{disableOut: true}
	svc := newUserService(t, db, repo, nil)

	ok, err := svc.DisableUser(context.Background(), "admin", 10)
	if err != nil {
		t.Fatalf("DisableUser error: %v", err)
	}
	if !ok {
		t.Fatal("expected true")
	}

	in := repo.disableIn
	if v, _ := in.IsActive.Get(); v {
		t.Fatal("expected is_active=false in update")
	}
	if v, _ := in.ChangedBy.Get(); v != "admin" {
		t.Fatalf("expected changed_by=admin, got %q", v)
	}
	if !in.ChangedOn.IsSet() {
		t.Fatal("expected changed_on to be stamped")
	}
}

func TestCountUsers_ForcesActiveFilter(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{countOut: 3}
	svc := newUserService(t, db, repo, nil)

	n, err := svc.CountUsers(context.Background(), nil)
	if err != nil {
		t.Fatalf("CountUsers error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
	if got := repo.countFilter["is_active"]; got != true {
		t.Fatalf("expected is_active=true in filter, got %v", repo.countFilter)
	}
}

func TestEnsureAdmin_SkipsWhenUnconfigured(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	repo := &fakeUsersRepo{}
	svc := newUserService(t, db, repo, &config.Config{})

	if err := svc.EnsureAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureAdmin error: %v", err)
	}
	// no transaction should have started
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
	if repo.createIn != nil {
		t.Fatal("no create expected")
	}
}

func TestEnsureAdmin_SkipsWhenAccountExists(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeUsersRepo{countOut: 1}
	cfg := &config.Config{AdminEmail: "root@x.com", AdminPasswordHash: "$2a$10$h"}
	svc := newUserService(t, db, repo, cfg)

	if err := svc.EnsureAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureAdmin error: %v", err)
	}
	if got := repo.countFilter["email"]; got != "root@x.com" {
		t.Fatalf("expected email filter, got %v", repo.countFilter)
	}
	if repo.createIn != nil {
		t.Fatal("no create expected when the account already exists")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestEnsureAdmin_CreatesBootstrapSuperuser(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	email := "root@x.com"
	repo := &fakeUsersRepo{createOut: &models.UserSummary{ID: 1, Email: &email}}
	cfg := &config.Config{AdminEmail: "root@x.com", AdminPasswordHash: "$2a$10$h"}
	svc := newUserService(t, db, repo, cfg)

	if err := svc.EnsureAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureAdmin error: %v", err)
	}

	in := repo.createIn
	if in == nil {
		t.Fatal("expected create call")
	}
	if in.Email != "root@x.com" || in.HashedPassword != "$2a$10$h" || !in.IsSuperuser {
		t.Fatalf("unexpected create input: %+v", in)
	}
	if in.Password != "" {
		t.Fatal("seed must not carry a plaintext password")
	}
	if in.AddedBy != "system" {
		t.Fatalf("expected added_by=system, got %q", in.AddedBy)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestEnsureAdmin_RollsBackOnCreateError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeUsersRepo{createErr: errors.New("boom")}
	cfg := &config.Config{AdminEmail: "root@x.com", AdminPasswordHash: "$2a$10$h"}
	svc := newUserService(t, db, repo, cfg)

	if err := svc.EnsureAdmin(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
