package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/msoler84/userhub/internal/server/models"
	"github.com/msoler84/userhub/internal/server/repositories/repomanager"
	"github.com/msoler84/userhub/internal/server/store"
)

// UserTypeService manages the user type lookup table. It is a thin wrapper:
// the repository already carries the audit-stamping behavior.
type UserTypeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserTypeService(db *sql.DB, m repomanager.RepositoryManager) *UserTypeService {
	return &UserTypeService{db: db, repomanager: m}
}

func (s *UserTypeService) ListUserTypes(ctx context.Context, skip, limit int) ([]*models.UserType, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	repo := s.repomanager.UserTypes(s.db)
	return repo.List(ctx, store.Filter{}, skip, limit)
}

func (s *UserTypeService) GetUserType(ctx context.Context, id int64) (*models.UserType, error) {
	repo := s.repomanager.UserTypes(s.db)
	return repo.GetByID(ctx, id)
}

func (s *UserTypeService) CreateUserType(ctx context.Context, name, actingUser string) (*models.UserType, error) {
	in := &models.UserTypeCreate{
		Name:    name,
		AddedOn: time.Now().UTC(),
		AddedBy: actingUser,
	}
	repo := s.repomanager.UserTypes(s.db)
	return repo.Create(ctx, in)
}

func (s *UserTypeService) UpdateUserType(ctx context.Context, actingUser string, data *models.UserTypeUpdate, id int64) (*models.UserType, error) {
	repo := s.repomanager.UserTypes(s.db)
	return repo.Update(ctx, id, data, actingUser)
}

// DeleteUserType removes a lookup category. Referencing users go with it,
// the schema cascades the foreign key.
func (s *UserTypeService) DeleteUserType(ctx context.Context, id int64) (int64, error) {
	repo := s.repomanager.UserTypes(s.db)
	return repo.Delete(ctx, id)
}
