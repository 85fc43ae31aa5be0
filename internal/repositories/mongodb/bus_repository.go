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

type busRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewBusRepository(db *mongo.Database, cache CacheService) interfaces.BusRepository {
	return &busRepository{
		collection: db.Collection(database.CollectionBuses),
		cache:      cache,
	}
}

func (r *busRepository) Create(ctx context.Context, bus *models.Bus) error {
	now := time.Now()
	bus.ID = primitive.NewObjectID()
	bus.IsDeleted = false
	bus.CreatedAt = now
	bus.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, bus); err != nil {
		return translateError(err, "create bus")
	}
	return nil
}

func (r *busRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bus, error) {
	if bus := r.getFromCache(ctx, id); bus != nil {
		return bus, nil
	}

	bus, err := findOne[models.Bus](ctx, r.collection, notDeleted(bson.M{"_id": id}), "get bus")
	if err != nil {
		return nil, err
	}

	r.cacheBus(ctx, bus)
	return bus, nil
}

func (r *busRepository) GetByBusNumber(ctx context.Context, busNumber string) (*models.Bus, error) {
	return findOne[models.Bus](ctx, r.collection, notDeleted(bson.M{"bus_number": busNumber}), "get bus by number")
}

func (r *busRepository) GetByPlateNumber(ctx context.Context, plateNumber string) (*models.Bus, error) {
	return findOne[models.Bus](ctx, r.collection, notDeleted(bson.M{"plate_number": plateNumber}), "get bus by plate")
}

func (r *busRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Bus, error) {
	bus, err := updateOne[models.Bus](ctx, r.collection, notDeleted(bson.M{"_id": id}), updates, "update bus")
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return bus, nil
}

func (r *busRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Bus, error) {
	bus, err := softDelete[models.Bus](ctx, r.collection, id, "delete bus")
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return bus, nil
}

func (r *busRepository) List(ctx context.Context, filter interfaces.BusFilter, params *utils.PaginationParams) ([]*models.Bus, int64, error) {
	query := bson.M{}
	if !filter.IncludeDeleted {
		query = notDeleted(query)
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return findPage[models.Bus](ctx, r.collection, query, params, []string{"bus_number", "plate_number"}, "list buses")
}

// Overview joins every non-deleted bus with its live status and its
// current active assignment (driver and route resolved to names).
func (r *busRepository) Overview(ctx context.Context) ([]*models.BusOverview, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_deleted": false}}},
		{{Key: "$lookup", Value: bson.M{
			"from": database.CollectionBusStatus,
			"let":  bson.M{"busId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr":      bson.M{"$eq": bson.A{"$bus_id", "$$busId"}},
					"is_deleted": false,
				}},
				bson.M{"$limit": 1},
			},
			"as": "occupancy",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": database.CollectionBusAssignments,
			"let":  bson.M{"busId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr":      bson.M{"$eq": bson.A{"$bus_id", "$$busId"}},
					"status":     models.AssignmentStatusActive,
					"is_deleted": false,
				}},
				bson.M{"$sort": bson.M{"started_at": -1}},
				bson.M{"$limit": 1},
				bson.M{"$lookup": bson.M{
					"from":         database.CollectionDrivers,
					"localField":   "driver_id",
					"foreignField": "_id",
					"as":           "driver",
				}},
				bson.M{"$lookup": bson.M{
					"from":         database.CollectionRoutes,
					"localField":   "route_id",
					"foreignField": "_id",
					"as":           "route",
				}},
				bson.M{"$project": bson.M{
					"status":     1,
					"started_at": 1,
					"driver_name": bson.M{"$trim": bson.M{"input": bson.M{"$concat": bson.A{
						firstOr("$driver.f_name", ""), " ", firstOr("$driver.l_name", ""),
					}}}},
					"route_code": firstOr("$route.route_code", ""),
					"route_name": firstOr("$route.route_name", ""),
				}},
			},
			"as": "assignment",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"occupancy":  bson.M{"$arrayElemAt": bson.A{"$occupancy", 0}},
			"assignment": bson.M{"$arrayElemAt": bson.A{"$assignment", 0}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "bus_number", Value: 1}}}},
	}

	return aggregate[models.BusOverview](ctx, r.collection, pipeline, "build bus overview")
}

func firstOr(path string, fallback interface{}) bson.M {
	return bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{path, 0}}, fallback}}
}

func (r *busRepository) cacheBus(ctx context.Context, bus *models.Bus) {
	if r.cache != nil {
		_ = r.cache.Set(ctx, cacheKey(utils.CacheBusPrefix, bus.ID), bus, utils.CacheTTLEntity)
	}
}

func (r *busRepository) getFromCache(ctx context.Context, id primitive.ObjectID) *models.Bus {
	if r.cache == nil {
		return nil
	}
	var bus models.Bus
	if err := r.cache.Get(ctx, cacheKey(utils.CacheBusPrefix, id), &bus); err != nil {
		return nil
	}
	return &bus
}

func (r *busRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, cacheKey(utils.CacheBusPrefix, id))
	}
}
