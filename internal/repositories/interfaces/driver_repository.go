package interfaces

import (
	"context"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	GetByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Driver, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Driver, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	List(ctx context.Context, filter DriverFilter, params *utils.PaginationParams) ([]*models.Driver, int64, error)
}
