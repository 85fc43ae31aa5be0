package interfaces

import (
	"context"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RouteRepository interface {
	Create(ctx context.Context, route *models.Route) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Route, error)
	GetByRouteCode(ctx context.Context, code string) (*models.Route, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Route, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Route, error)
	List(ctx context.Context, filter RouteFilter, params *utils.PaginationParams) ([]*models.Route, int64, error)
}

type RouteStopRepository interface {
	Create(ctx context.Context, stop *models.RouteStop) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.RouteStop, error)
	// FindDuplicate looks up a stop with the same route, name and order.
	FindDuplicate(ctx context.Context, routeID primitive.ObjectID, stopName string, stopOrder int, exclude *primitive.ObjectID) (*models.RouteStop, error)
	ListByRoute(ctx context.Context, routeID primitive.ObjectID) ([]*models.RouteStop, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.RouteStop, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.RouteStop, error)
}
