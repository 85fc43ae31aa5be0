package mongodb

import (
	"context"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type busAssignmentRepository struct {
	collection *mongo.Collection
}

func NewBusAssignmentRepository(db *mongo.Database) interfaces.BusAssignmentRepository {
	return &busAssignmentRepository{collection: db.Collection(database.CollectionBusAssignments)}
}

func (r *busAssignmentRepository) Create(ctx context.Context, assignment *models.BusAssignment) error {
	now := time.Now()
	assignment.ID = primitive.NewObjectID()
	assignment.IsDeleted = false
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	if assignment.StartedAt.IsZero() {
		assignment.StartedAt = now
	}

	if _, err := r.collection.InsertOne(ctx, assignment); err != nil {
		return translateError(err, "create bus assignment")
	}
	return nil
}

func (r *busAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error) {
	return findOne[models.BusAssignment](ctx, r.collection, notDeleted(bson.M{"_id": id}), "get bus assignment")
}

func (r *busAssignmentRepository) GetActiveByBus(ctx context.Context, busID primitive.ObjectID, exclude *primitive.ObjectID) (*models.BusAssignment, error) {
	return r.findActive(ctx, bson.M{"bus_id": busID}, exclude)
}

func (r *busAssignmentRepository) GetActiveByDriver(ctx context.Context, driverID primitive.ObjectID, exclude *primitive.ObjectID) (*models.BusAssignment, error) {
	return r.findActive(ctx, bson.M{"driver_id": driverID}, exclude)
}

func (r *busAssignmentRepository) findActive(ctx context.Context, filter bson.M, exclude *primitive.ObjectID) (*models.BusAssignment, error) {
	filter["status"] = models.AssignmentStatusActive
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}
	return findOne[models.BusAssignment](ctx, r.collection, notDeleted(filter), "get active assignment")
}

func (r *busAssignmentRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.BusAssignment, error) {
	return updateOne[models.BusAssignment](ctx, r.collection, notDeleted(bson.M{"_id": id}), updates, "update bus assignment")
}

func (r *busAssignmentRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error) {
	return softDelete[models.BusAssignment](ctx, r.collection, id, "delete bus assignment")
}

func (r *busAssignmentRepository) List(ctx context.Context, filter interfaces.BusAssignmentFilter, params *utils.PaginationParams) ([]*models.BusAssignment, int64, error) {
	query := notDeleted(nil)
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.BusID != nil {
		query["bus_id"] = *filter.BusID
	}
	if filter.DriverID != nil {
		query["driver_id"] = *filter.DriverID
	}
	if filter.RouteID != nil {
		query["route_id"] = *filter.RouteID
	}
	if filter.Since != nil {
		query["started_at"] = bson.M{"$gte": *filter.Since}
	}
	return findPage[models.BusAssignment](ctx, r.collection, query, params, nil, "list bus assignments")
}
