// Package users implements the user-specific persistence layer on top of the
// generic store: password hashing on creation, verification token issuance,
// response redaction, and soft-disable semantics.
package users

import (
	"context"

	"github.com/msoler84/userhub/internal/server/models"
	"github.com/msoler84/userhub/internal/server/store"
)

// Repository defines the user persistence operations used by the service
// layer. Everything it returns is already redacted; the password hash never
// leaves this package.
type Repository interface {
	// List returns redacted user views matching filter, with the user type
	// relation eagerly loaded.
	List(ctx context.Context, filter store.Filter, skip, limit int) ([]*models.UserView, error)

	// GetByID returns a redacted view, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.UserView, error)

	// Create hashes the plaintext password, issues a verification token, and
	// returns only the summary fields considered safe to echo after signup.
	Create(ctx context.Context, in *models.UserCreate) (*models.UserSummary, error)

	// Update applies a partial update, defaulting the audit fields to the
	// acting user and current time when the caller did not supply them.
	Update(ctx context.Context, id int64, in *models.UserUpdate, actingUser string) (*models.UserView, error)

	// Disable applies a soft-delete update. Returns common.ErrNotFound when
	// the record is absent, true otherwise.
	Disable(ctx context.Context, id int64, in *models.UserUpdate) (bool, error)

	// Count returns the number of users matching filter.
	Count(ctx context.Context, filter store.Filter) (int64, error)
}
