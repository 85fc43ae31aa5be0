package interfaces

import (
	"context"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BusRepository interface {
	Create(ctx context.Context, bus *models.Bus) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bus, error)
	GetByBusNumber(ctx context.Context, busNumber string) (*models.Bus, error)
	GetByPlateNumber(ctx context.Context, plateNumber string) (*models.Bus, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Bus, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Bus, error)
	List(ctx context.Context, filter BusFilter, params *utils.PaginationParams) ([]*models.Bus, int64, error)
	Overview(ctx context.Context) ([]*models.BusOverview, error)
}

type BusStatusRepository interface {
	Create(ctx context.Context, status *models.BusStatus) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BusStatus, error)
	GetByBusID(ctx context.Context, busID primitive.ObjectID) (*models.BusStatus, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.BusStatus, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.BusStatus, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.BusStatus, int64, error)
}

type BusAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.BusAssignment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error)
	// GetActiveByBus and GetActiveByDriver return ErrNotFound when nothing
	// other than exclude is active.
	GetActiveByBus(ctx context.Context, busID primitive.ObjectID, exclude *primitive.ObjectID) (*models.BusAssignment, error)
	GetActiveByDriver(ctx context.Context, driverID primitive.ObjectID, exclude *primitive.ObjectID) (*models.BusAssignment, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.BusAssignment, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error)
	List(ctx context.Context, filter BusAssignmentFilter, params *utils.PaginationParams) ([]*models.BusAssignment, int64, error)
}
