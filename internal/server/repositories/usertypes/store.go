package usertypes

import (
	"context"
	"fmt"
	"time"

	"github.com/msoler84/userhub/internal/common"
	"github.com/msoler84/userhub/internal/dbx"
	"github.com/msoler84/userhub/internal/nullable"
	"github.com/msoler84/userhub/internal/server/models"
	"github.com/msoler84/userhub/internal/server/store"
)

// Store specializes the generic store for the UserType entity. Unlike the
// user store there is nothing to redact; the views nested in user responses
// are built on the user side.
type Store struct {
	crud *store.Store[models.UserType, models.UserTypeCreate, models.UserTypeUpdate]
}

func NewStore(db dbx.DBTX) *Store {
	return &Store{crud: store.New(db, mapping())}
}

func mapping() store.Mapping[models.UserType, models.UserTypeCreate, models.UserTypeUpdate] {
	return store.Mapping[models.UserType, models.UserTypeCreate, models.UserTypeUpdate]{
		Table:   "user_type",
		Columns: []string{"id", "user_type_name", "added_on", "added_by", "changed_on", "changed_by"},
		Scan: func(row store.RowScanner) (*models.UserType, error) {
			ut := &models.UserType{}
			err := row.Scan(&ut.ID, &ut.Name, &ut.AddedOn, &ut.AddedBy, &ut.ChangedOn, &ut.ChangedBy)
			if err != nil {
				return nil, err
			}
			return ut, nil
		},
		Insert: func(in *models.UserTypeCreate) ([]string, []any) {
			return []string{"user_type_name", "added_on", "added_by"},
				[]any{in.Name, in.AddedOn, in.AddedBy}
		},
		Update: func(in *models.UserTypeUpdate) ([]string, []any) {
			var cols []string
			var vals []any
			if in.Name.IsSet() {
				cols = append(cols, "user_type_name")
				vals = append(vals, in.Name.Ptr())
			}
			if in.ChangedOn.IsSet() {
				cols = append(cols, "changed_on")
				vals = append(vals, in.ChangedOn.Ptr())
			}
			if in.ChangedBy.IsSet() {
				cols = append(cols, "changed_by")
				vals = append(vals, in.ChangedBy.Ptr())
			}
			return cols, vals
		},
		ID: func(ut *models.UserType) int64 { return ut.ID },
	}
}

func (s *Store) List(ctx context.Context, filter store.Filter, skip, limit int) ([]*models.UserType, error) {
	return s.crud.List(ctx, filter, skip, limit)
}

func (s *Store) GetByID(ctx context.Context, id int64) (*models.UserType, error) {
	ut, err := s.crud.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ut == nil {
		return nil, common.ErrNotFound
	}
	return ut, nil
}

func (s *Store) Create(ctx context.Context, in *models.UserTypeCreate) (*models.UserType, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: user_type_name is required", common.ErrValidation)
	}
	return s.crud.Create(ctx, in)
}

func (s *Store) Update(ctx context.Context, id int64, in *models.UserTypeUpdate, actingUser string) (*models.UserType, error) {
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

	return s.crud.Update(ctx, existing, in)
}

// Delete removes the lookup row. Referencing users are removed by the
// schema's ON DELETE CASCADE. Returns the number of rows removed (0 or 1).
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	existing, err := s.crud.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	return s.crud.Delete(ctx, existing)
}

func (s *Store) Count(ctx context.Context, filter store.Filter) (int64, error) {
	return s.crud.Count(ctx, filter)
}
