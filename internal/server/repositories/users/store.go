package users

import (
	"context"
	"fmt"
	"time"

	"github.com/msoler84/userhub/internal/common"
	"github.com/msoler84/userhub/internal/dbx"
	"github.com/msoler84/userhub/internal/nullable"
	"github.com/msoler84/userhub/internal/server/auth"
	"github.com/msoler84/userhub/internal/server/models"
	"github.com/msoler84/userhub/internal/server/store"
)

// Store specializes the generic store for the User entity.
type Store struct {
	crud   *store.Store[models.User, models.UserCreate, models.UserUpdate]
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewStore(db dbx.DBTX, hasher *auth.PasswordHasher, tokens *auth.TokenService) *Store {
	return &Store{
		crud:   store.New(db, mapping()),
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *Store) List(ctx context.Context, filter store.Filter, skip, limit int) ([]*models.UserView, error) {
	items, err := s.crud.List(ctx, filter, skip, limit, UserTypeRelation)
	if err != nil {
		return nil, err
	}

	views := make([]*models.UserView, len(items))
	for i, u := range items {
		views[i] = models.NewUserView(u)
	}
	return views, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*models.UserView, error) {
	u, err := s.crud.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, common.ErrNotFound
	}
	return models.NewUserView(u), nil
}

// Create hashes the plaintext password in place and stores a verification
// token alongside the new record. The token carries no subject; it is an
// opaque verification artifact, not an access credential.
func (s *Store) Create(ctx context.Context, in *models.UserCreate) (*models.UserSummary, error) {
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if in.Password == "" && in.HashedPassword == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		in.HashedPassword = hash
	}

	link, err := s.tokens.Issue(nil)
	if err != nil {
		return nil, err
	}
	in.VerificationLink = link

	created, err := s.crud.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return models.NewUserSummary(created), nil
}

func (s *Store) Update(ctx context.Context, id int64, in *models.UserUpdate, actingUser string) (*models.UserView, error) {
	existing, err := s.crud.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, common.ErrNotFound
	}

	if !in.ChangedOn.IsSet() {
		in.ChangedOn = nullable.Of(time.Now().UTC())
	}
	if !in.ChangedBy.IsSet() {
		in.ChangedBy = nullable.Of(actingUser)
	}

	updated, err := s.crud.Update(ctx, existing, in)
	if err != nil {
		return nil, err
	}
	return models.NewUserView(updated), nil
}

// Disable flips the active flag off; the record itself remains. Disabling an
// already-disabled account succeeds again (idempotent).
func (s *Store) Disable(ctx context.Context, id int64, in *models.UserUpdate) (bool, error) {
	existing, err := s.crud.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, common.ErrNotFound
	}

	if _, err := s.crud.Update(ctx, existing, in); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Count(ctx context.Context, filter store.Filter) (int64, error) {
	return s.crud.Count(ctx, filter)
}
