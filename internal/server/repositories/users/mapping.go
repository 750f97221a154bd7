package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/msoler84/userhub/internal/dbx"
	"github.com/msoler84/userhub/internal/nullable"
	"github.com/msoler84/userhub/internal/server/models"
	"github.com/msoler84/userhub/internal/server/store"
)

// UserTypeRelation is the prefetchable relation name for the user type.
const UserTypeRelation = "user_type"

func mapping() store.Mapping[models.User, models.UserCreate, models.UserUpdate] {
	return store.Mapping[models.User, models.UserCreate, models.UserUpdate]{
		Table: "users",
		Columns: []string{
			"id", "first_name", "second_name", "id_number", "email", "adress",
			"phone_number", "hashed_password", "is_active", "is_superuser",
			"user_type_id", "verification_link", "added_on", "added_by",
			"changed_on", "changed_by",
		},
		Scan: func(row store.RowScanner) (*models.User, error) {
			u := &models.User{}
			err := row.Scan(
				&u.ID, &u.FirstName, &u.SecondName, &u.IDNumber, &u.Email,
				&u.Address, &u.PhoneNumber, &u.HashedPassword, &u.IsActive,
				&u.IsSuperuser, &u.UserTypeID, &u.VerificationLink,
				&u.AddedOn, &u.AddedBy, &u.ChangedOn, &u.ChangedBy,
			)
			if err != nil {
				return nil, err
			}
			return u, nil
		},
		Insert: func(in *models.UserCreate) ([]string, []any) {
			cols := []string{
				"first_name", "second_name", "id_number", "email", "adress",
				"phone_number", "hashed_password", "is_superuser",
				"user_type_id", "verification_link", "added_on", "added_by",
			}
			vals := []any{
				in.FirstName, in.SecondName, in.IDNumber, in.Email, in.Address,
				in.PhoneNumber, in.HashedPassword, in.IsSuperuser,
				in.UserTypeID, in.VerificationLink, in.AddedOn, in.AddedBy,
			}
			return cols, vals
		},
		Update: func(in *models.UserUpdate) ([]string, []any) {
			var cols []string
			var vals []any
			appendField(&cols, &vals, "first_name", in.FirstName)
			appendField(&cols, &vals, "second_name", in.SecondName)
			appendField(&cols, &vals, "id_number", in.IDNumber)
			appendField(&cols, &vals, "email", in.Email)
			appendField(&cols, &vals, "adress", in.Address)
			appendField(&cols, &vals, "phone_number", in.PhoneNumber)
			appendField(&cols, &vals, "hashed_password", in.HashedPassword)
			appendField(&cols, &vals, "user_type_id", in.UserTypeID)
			appendField(&cols, &vals, "is_active", in.IsActive)
			appendField(&cols, &vals, "changed_on", in.ChangedOn)
			appendField(&cols, &vals, "changed_by", in.ChangedBy)
			return cols, vals
		},
		ID: func(u *models.User) int64 { return u.ID },
		Relations: map[string]store.RelationLoader[models.User]{
			UserTypeRelation: loadUserTypes,
		},
	}
}

// appendField adds a column only when the partial-update field was provided;
// explicit nulls become nil pointers, which map to SQL NULL.
func appendField[T any](cols *[]string, vals *[]any, name string, f nullable.Field[T]) {
	if !f.IsSet() {
		return
	}
	*cols = append(*cols, name)
	*vals = append(*vals, f.Ptr())
}

// loadUserTypes attaches the referenced UserType rows to a batch of users
// with a single query, avoiding N+1 lookups.
func loadUserTypes(ctx context.Context, db dbx.DBTX, items []*models.User) error {
	ids := make([]any, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, u := range items {
		if u.UserTypeID == nil {
			continue
		}
		if _, ok := seen[*u.UserTypeID]; ok {
			continue
		}
		seen[*u.UserTypeID] = struct{}{}
		ids = append(ids, *u.UserTypeID)
	}
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	for i := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"SELECT id, user_type_name, added_on, added_by, changed_on, changed_by FROM user_type WHERE id IN (%s)",
		strings.Join(placeholders, ", "))

	rows, err := db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*models.UserType, len(ids))
	for rows.Next() {
		ut := &models.UserType{}
		if err := rows.Scan(&ut.ID, &ut.Name, &ut.AddedOn, &ut.AddedBy, &ut.ChangedOn, &ut.ChangedBy); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		byID[ut.ID] = ut
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	for _, u := range items {
		if u.UserTypeID != nil {
			u.UserType = byID[*u.UserTypeID]
		}
	}
	return nil
}
