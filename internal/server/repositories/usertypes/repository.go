// Package usertypes implements persistence for the user type lookup table.
package usertypes

import (
	"context"

	"github.com/msoler84/userhub/internal/server/models"
	"github.com/msoler84/userhub/internal/server/store"
)

// Repository defines the lookup-table operations used by the service layer.
type Repository interface {
	List(ctx context.Context, filter store.Filter, skip, limit int) ([]*models.UserType, error)
	GetByID(ctx context.Context, id int64) (*models.UserType, error)
	Create(ctx context.Context, in *models.UserTypeCreate) (*models.UserType, error)
	Update(ctx context.Context, id int64, in *models.UserTypeUpdate, actingUser string) (*models.UserType, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context, filter store.Filter) (int64, error)
}
