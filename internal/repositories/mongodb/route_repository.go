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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type routeRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewRouteRepository(db *mongo.Database, cache CacheService) interfaces.RouteRepository {
	return &routeRepository{
		collection: db.Collection(database.CollectionRoutes),
		cache:      cache,
	}
}

func (r *routeRepository) Create(ctx context.Context, route *models.Route) error {
	now := time.Now()
	route.ID = primitive.NewObjectID()
	route.IsDeleted = false
	route.CreatedAt = now
	route.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, route); err != nil {
		return translateError(err, "create route")
	}
	return nil
}

func (r *routeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Route, error) {
	key := cacheKey(utils.CacheRoutePrefix, id)
	if r.cache != nil {
		var route models.Route
		if err := r.cache.Get(ctx, key, &route); err == nil {
			return &route, nil
		}
	}

	route, err := findOne[models.Route](ctx, r.collection, notDeleted(bson.M{"_id": id}), "get route")
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, key, route, utils.CacheTTLEntity)
	}
	return route, nil
}

func (r *routeRepository) GetByRouteCode(ctx context.Context, code string) (*models.Route, error) {
	return findOne[models.Route](ctx, r.collection, notDeleted(bson.M{"route_code": code}), "get route by code")
}

func (r *routeRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Route, error) {
	route, err := updateOne[models.Route](ctx, r.collection, notDeleted(bson.M{"_id": id}), updates, "update route")
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return route, nil
}

func (r *routeRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Route, error) {
	route, err := softDelete[models.Route](ctx, r.collection, id, "delete route")
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return route, nil
}

func (r *routeRepository) List(ctx context.Context, filter interfaces.RouteFilter, params *utils.PaginationParams) ([]*models.Route, int64, error) {
	query := bson.M{}
	if !filter.IncludeDeleted {
		query = notDeleted(query)
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return findPage[models.Route](ctx, r.collection, query, params,
		[]string{"route_code", "route_name", "origin", "destination"}, "list routes")
}

func (r *routeRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, cacheKey(utils.CacheRoutePrefix, id))
	}
}

type routeStopRepository struct {
	collection *mongo.Collection
}

func NewRouteStopRepository(db *mongo.Database) interfaces.RouteStopRepository {
	return &routeStopRepository{collection: db.Collection(database.CollectionRouteStops)}
}

func (r *routeStopRepository) Create(ctx context.Context, stop *models.RouteStop) error {
	now := time.Now()
	stop.ID = primitive.NewObjectID()
	stop.CreatedAt = now
	stop.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, stop); err != nil {
		return translateError(err, "create route stop")
	}
	return nil
}

func (r *routeStopRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RouteStop, error) {
	return findOne[models.RouteStop](ctx, r.collection, bson.M{"_id": id}, "get route stop")
}

func (r *routeStopRepository) FindDuplicate(ctx context.Context, routeID primitive.ObjectID, stopName string, stopOrder int, exclude *primitive.ObjectID) (*models.RouteStop, error) {
	filter := bson.M{
		"route_id":   routeID,
		"stop_name":  stopName,
		"stop_order": stopOrder,
	}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}
	return findOne[models.RouteStop](ctx, r.collection, filter, "find route stop")
}

func (r *routeStopRepository) ListByRoute(ctx context.Context, routeID primitive.ObjectID) ([]*models.RouteStop, error) {
	opts := options.Find().SetSort(bson.D{{Key: "stop_order", Value: 1}, {Key: "_id", Value: 1}})
	return findAll[models.RouteStop](ctx, r.collection, bson.M{"route_id": routeID}, "list route stops", opts)
}

func (r *routeStopRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.RouteStop, error) {
	return updateOne[models.RouteStop](ctx, r.collection, bson.M{"_id": id}, updates, "update route stop")
}

// Delete removes the stop permanently and returns the removed document.
func (r *routeStopRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.RouteStop, error) {
	var stop models.RouteStop
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&stop); err != nil {
		return nil, translateError(err, "delete route stop")
	}
	return &stop, nil
}
