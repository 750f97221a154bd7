// Package services contains server-side business logic. This file implements
// UserService, which orchestrates listing, creation, partial updates, and
// soft-disabling of user accounts, plus the bootstrap admin seed.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msoler84/userhub/internal/dbx"
	"github.com/msoler84/userhub/internal/nullable"
	"github.com/msoler84/userhub/internal/server/config"
	"github.com/msoler84/userhub/internal/server/models"
	"github.com/msoler84/userhub/internal/server/repositories/repomanager"
	"github.com/msoler84/userhub/internal/server/store"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// UserService provides account management operations:
// - ListUsers / GetUser / CountUsers: read paths, active accounts only by default
// - CreateUser: signup with audit stamping
// - UpdateUser / DisableUser: partial updates and soft-delete
// - EnsureAdmin: idempotent bootstrap superuser seed
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	adminEmail  string
	adminHash   string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		adminEmail:  cfg.AdminEmail,
		adminHash:   cfg.AdminPasswordHash,
	}
}

// ListUsers returns active accounts, optionally narrowed to a user type.
// Disabled accounts never appear in default listings. Pagination bounds are
// normalized: negative skip becomes 0, limit defaults to 10 and caps at 100.
func (s *UserService) ListUsers(ctx context.Context, userTypeID *int64, skip, limit int) ([]*models.UserView, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := store.Filter{"is_active": true}
	if userTypeID != nil {
		filter["user_type_id"] = *userTypeID
	}

	repo := s.repomanager.Users(s.db)
	return repo.List(ctx, filter, skip, limit)
}

// GetUser returns a single account view, or common.ErrNotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.UserView, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, id)
}

// CreateUser registers a new account, stamping the audit fields with the
// acting user and current time.
func (s *UserService) CreateUser(ctx context.Context, email, password string, userTypeID *int64, actingUser string) (*models.UserSummary, error) {
	in := &models.UserCreate{
		Email:      email,
		Password:   password,
		UserTypeID: userTypeID,
		AddedOn:    time.Now().UTC(),
		AddedBy:    actingUser,
	}
	repo := s.repomanager.Users(s.db)
	return repo.Create(ctx, in)
}

// UpdateUser applies a partial update on behalf of actingUser.
func (s *UserService) UpdateUser(ctx context.Context, actingUser string, data *models.UserUpdate, id int64) (*models.UserView, error) {
	repo := s.repomanager.Users(s.db)
	return repo.Update(ctx, id, data, actingUser)
}

// DisableUser soft-deletes an account: the row remains, only the active flag
// flips. Disabling an already-disabled account still succeeds.
func (s *UserService) DisableUser(ctx context.Context, actingUser string, id int64) (bool, error) {
	in := &models.UserUpdate{
		IsActive:  nullable.Of(false),
		ChangedOn: nullable.Of(time.Now().UTC()),
		ChangedBy: nullable.Of(actingUser),
	}
	repo := s.repomanager.Users(s.db)
	return repo.Disable(ctx, id, in)
}

// CountUsers counts active accounts, optionally narrowed to a user type.
func (s *UserService) CountUsers(ctx context.Context, userTypeID *int64) (int64, error) {
	filter := store.Filter{"is_active": true}
	if userTypeID != nil {
		filter["user_type_id"] = *userTypeID
	}
	repo := s.repomanager.Users(s.db)
	return repo.Count(ctx, filter)
}

// EnsureAdmin creates the configured bootstrap superuser if no account with
// that email exists yet. The configured credential is already a bcrypt hash,
// so it bypasses the hasher. Safe to run on every startup.
func (s *UserService) EnsureAdmin(ctx context.Context) error {
	if s.adminEmail == "" || s.adminHash == "" {
		return nil
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		n, err := repo.Count(ctx, store.Filter{"email": s.adminEmail})
		if err != nil {
			return fmt.Errorf("error checking admin account: %w", err)
		}
		if n > 0 {
			return nil
		}

		in := &models.UserCreate{
			Email:          s.adminEmail,
			HashedPassword: s.adminHash,
			IsSuperuser:    true,
			AddedOn:        time.Now().UTC(),
			AddedBy:        "system",
		}
		if _, err := repo.Create(ctx, in); err != nil {
			return fmt.Errorf("error creating admin account: %w", err)
		}
		return nil
	})
}
