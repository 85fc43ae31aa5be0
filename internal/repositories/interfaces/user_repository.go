package interfaces

import (
	"context"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter UserFilter, params *utils.PaginationParams) ([]*models.User, int64, error)
	// ActiveIDs returns the ids of every non-deleted active user.
	ActiveIDs(ctx context.Context) ([]primitive.ObjectID, error)
}
