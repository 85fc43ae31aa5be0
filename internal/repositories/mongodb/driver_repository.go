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

type driverRepository struct {
	collection *mongo.Collection
}

func NewDriverRepository(db *mongo.Database) interfaces.DriverRepository {
	return &driverRepository{collection: db.Collection(database.CollectionDrivers)}
}

func (r *driverRepository) Create(ctx context.Context, driver *models.Driver) error {
	now := time.Now()
	driver.ID = primitive.NewObjectID()
	driver.IsDeleted = false
	driver.CreatedAt = now
	driver.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, driver); err != nil {
		return translateError(err, "create driver")
	}
	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	return findOne[models.Driver](ctx, r.collection, notDeleted(bson.M{"_id": id}), "get driver")
}

func (r *driverRepository) GetByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Driver, error) {
	return findOne[models.Driver](ctx, r.collection, notDeleted(bson.M{"license_number": licenseNumber}), "get driver by license")
}

func (r *driverRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Driver, error) {
	return updateOne[models.Driver](ctx, r.collection, notDeleted(bson.M{"_id": id}), updates, "update driver")
}

func (r *driverRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	return softDelete[models.Driver](ctx, r.collection, id, "delete driver")
}

func (r *driverRepository) List(ctx context.Context, filter interfaces.DriverFilter, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	query := bson.M{}
	if !filter.IncludeDeleted {
		query = notDeleted(query)
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return findPage[models.Driver](ctx, r.collection, query, params,
		[]string{"f_name", "l_name", "license_number", "contact_number"}, "list drivers")
}
