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

type busStatusRepository struct {
	collection *mongo.Collection
}

func NewBusStatusRepository(db *mongo.Database) interfaces.BusStatusRepository {
	return &busStatusRepository{collection: db.Collection(database.CollectionBusStatus)}
}

func (r *busStatusRepository) Create(ctx context.Context, status *models.BusStatus) error {
	now := time.Now()
	status.ID = primitive.NewObjectID()
	status.IsDeleted = false
	status.CreatedAt = now
	status.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, status); err != nil {
		return translateError(err, "create bus status")
	}
	return nil
}

func (r *busStatusRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BusStatus, error) {
	return findOne[models.BusStatus](ctx, r.collection, notDeleted(bson.M{"_id": id}), "get bus status")
}

func (r *busStatusRepository) GetByBusID(ctx context.Context, busID primitive.ObjectID) (*models.BusStatus, error) {
	return findOne[models.BusStatus](ctx, r.collection, notDeleted(bson.M{"bus_id": busID}), "get bus status by bus")
}

func (r *busStatusRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.BusStatus, error) {
	return updateOne[models.BusStatus](ctx, r.collection, notDeleted(bson.M{"_id": id}), updates, "update bus status")
}

func (r *busStatusRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.BusStatus, error) {
	return softDelete[models.BusStatus](ctx, r.collection, id, "delete bus status")
}

func (r *busStatusRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.BusStatus, int64, error) {
	return findPage[models.BusStatus](ctx, r.collection, notDeleted(nil), params, nil, "list bus statuses")
}
