package users

import (
	"context"

	"github.com/cuidarmais/registry/internal/server/models"
)

// Repository owns the persisted user record set. It performs no validation
// and no hashing; callers hand it pre-checked, pre-hashed data.
type Repository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id int64, patch *models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
