package services

import (
	"context"
	"errors"
	"fmt"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"
	"fleetadmin/pkg/logger"
	"fleetadmin/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgRouteNotFound     = "Route not found."
	msgRouteCodeExists   = "A route with this route code already exists."
	msgRouteDoesNotExist = "This route does not exist."
	msgRouteStopExists   = "This route stop already exists."
	msgRouteStopNotFound = "Route stop not found."
)

type RouteService interface {
	CreateRoute(ctx context.Context, req *validators.RouteCreateRequest) (*models.Route, error)
	GetRoute(ctx context.Context, id primitive.ObjectID) (*models.Route, error)
	UpdateRoute(ctx context.Context, id primitive.ObjectID, req *validators.RouteUpdateRequest) (*models.Route, error)
	DeleteRoute(ctx context.Context, id primitive.ObjectID) (*models.Route, error)
	ListRoutes(ctx context.Context, filter interfaces.RouteFilter, params *utils.PaginationParams) ([]*models.Route, int64, error)

	CreateStop(ctx context.Context, req *validators.RouteStopCreateRequest) (*models.RouteStop, error)
	GetStop(ctx context.Context, id primitive.ObjectID) (*models.RouteStop, error)
	ListStopsByRoute(ctx context.Context, routeID primitive.ObjectID) ([]*models.RouteStop, error)
	UpdateStop(ctx context.Context, id primitive.ObjectID, req *validators.RouteStopUpdateRequest) (*models.RouteStop, error)
	DeleteStop(ctx context.Context, id primitive.ObjectID) (*models.RouteStop, error)
}

type routeService struct {
	routeRepo interfaces.RouteRepository
	stopRepo  interfaces.RouteStopRepository
	geocoder  maps.Geocoder
	audit     SystemLogService
	logger    *logger.Logger
}

// NewRouteService builds the route service. geocoder may be nil, in which
// case distance_km is stored as given.
func NewRouteService(
	routeRepo interfaces.RouteRepository,
	stopRepo interfaces.RouteStopRepository,
	geocoder maps.Geocoder,
	audit SystemLogService,
	log *logger.Logger,
) RouteService {
	return &routeService{
		routeRepo: routeRepo,
		stopRepo:  stopRepo,
		geocoder:  geocoder,
		audit:     audit,
		logger:    log,
	}
}

func (s *routeService) CreateRoute(ctx context.Context, req *validators.RouteCreateRequest) (*models.Route, error) {
	existing, err := s.routeRepo.GetByRouteCode(ctx, req.RouteCode)
	if err := checkUnique(err, func() bool { return existing != nil }, msgRouteCodeExists); err != nil {
		return nil, err
	}

	route := &models.Route{
		RouteCode:   req.RouteCode,
		RouteName:   req.RouteName,
		Origin:      req.Origin,
		Destination: req.Destination,
		DistanceKM:  req.DistanceKM,
		Status:      models.RouteStatusActive,
	}
	if req.Status != "" {
		route.Status = models.RouteStatus(req.Status)
	}
	if route.DistanceKM == 0 {
		route.DistanceKM = s.drivingDistance(ctx, route.Origin, route.Destination)
	}

	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, writeErr(err, msgRouteCodeExists)
	}

	s.audit.Record(ctx, "route.create", fmt.Sprintf("Created route %s", route.RouteCode), "route", route.ID)
	return route, nil
}

func (s *routeService) GetRoute(ctx context.Context, id primitive.ObjectID) (*models.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgRouteNotFound)
	}
	return route, nil
}

func (s *routeService) UpdateRoute(ctx context.Context, id primitive.ObjectID, req *validators.RouteUpdateRequest) (*models.Route, error) {
	current, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgRouteNotFound)
	}

	updates := map[string]interface{}{}
	if req.RouteCode != nil && *req.RouteCode != current.RouteCode {
		existing, err := s.routeRepo.GetByRouteCode(ctx, *req.RouteCode)
		if err := checkUnique(err, func() bool { return existing.ID != id }, msgRouteCodeExists); err != nil {
			return nil, err
		}
		updates["route_code"] = *req.RouteCode
	}
	if req.RouteName != nil {
		updates["route_name"] = *req.RouteName
	}
	if req.Origin != nil {
		updates["origin"] = *req.Origin
	}
	if req.Destination != nil {
		updates["destination"] = *req.Destination
	}
	if req.Status != nil {
		updates["status"] = models.RouteStatus(*req.Status)
	}

	switch {
	case req.DistanceKM != nil:
		updates["distance_km"] = *req.DistanceKM
	case req.Origin != nil || req.Destination != nil:
		origin, destination := current.Origin, current.Destination
		if req.Origin != nil {
			origin = *req.Origin
		}
		if req.Destination != nil {
			destination = *req.Destination
		}
		if km := s.drivingDistance(ctx, origin, destination); km > 0 {
			updates["distance_km"] = km
		}
	}

	if len(updates) == 0 {
		return current, nil
	}

	route, err := s.routeRepo.Update(ctx, id, updates)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NewNotFoundError(msgRouteNotFound)
		}
		return nil, writeErr(err, msgRouteCodeExists)
	}

	s.audit.Record(ctx, "route.update", fmt.Sprintf("Updated route %s", route.RouteCode), "route", route.ID)
	return route, nil
}

func (s *routeService) DeleteRoute(ctx context.Context, id primitive.ObjectID) (*models.Route, error) {
	route, err := s.routeRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgRouteNotFound)
	}

	s.audit.Record(ctx, "route.delete", fmt.Sprintf("Deleted route %s", route.RouteCode), "route", route.ID)
	return route, nil
}

func (s *routeService) ListRoutes(ctx context.Context, filter interfaces.RouteFilter, params *utils.PaginationParams) ([]*models.Route, int64, error) {
	routes, total, err := s.routeRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return routes, total, nil
}

// drivingDistance asks the geocoder for the road distance. Lookup failures
// are logged and yield 0 so route writes never depend on the maps API.
func (s *routeService) drivingDistance(ctx context.Context, origin, destination string) float64 {
	if s.geocoder == nil || origin == "" || destination == "" {
		return 0
	}
	distance, err := s.geocoder.DrivingDistance(ctx, origin, destination)
	if err != nil {
		if !errors.Is(err, maps.ErrNoResults) {
			s.logger.WithError(err).Warn("Failed to resolve route distance")
		}
		return 0
	}
	return distance.Km
}

func (s *routeService) CreateStop(ctx context.Context, req *validators.RouteStopCreateRequest) (*models.RouteStop, error) {
	routeID := validators.MustObjectID(req.RouteID)
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		return nil, lookupErr(err, msgRouteDoesNotExist)
	}

	duplicate, err := s.stopRepo.FindDuplicate(ctx, routeID, req.StopName, req.StopOrder, nil)
	if err := checkUnique(err, func() bool { return duplicate != nil }, msgRouteStopExists); err != nil {
		return nil, err
	}

	stop := &models.RouteStop{
		RouteID:   routeID,
		StopName:  req.StopName,
		StopOrder: req.StopOrder,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.stopRepo.Create(ctx, stop); err != nil {
		return nil, writeErr(err, msgRouteStopExists)
	}

	s.audit.Record(ctx, "route_stop.create", fmt.Sprintf("Created stop %s", stop.StopName), "route_stop", stop.ID)
	return stop, nil
}

func (s *routeService) GetStop(ctx context.Context, id primitive.ObjectID) (*models.RouteStop, error) {
	stop, err := s.stopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgRouteStopNotFound)
	}
	return stop, nil
}

func (s *routeService) ListStopsByRoute(ctx context.Context, routeID primitive.ObjectID) ([]*models.RouteStop, error) {
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		return nil, lookupErr(err, msgRouteDoesNotExist)
	}
	stops, err := s.stopRepo.ListByRoute(ctx, routeID)
	if err != nil {
		return nil, utils.WrapInternal(err)
	}
	return stops, nil
}

// UpdateStop re-checks the (route, name, order) triple with the merged values.
func (s *routeService) UpdateStop(ctx context.Context, id primitive.ObjectID, req *validators.RouteStopUpdateRequest) (*models.RouteStop, error) {
	current, err := s.stopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgRouteStopNotFound)
	}

	updates := map[string]interface{}{}
	routeID, name, order := current.RouteID, current.StopName, current.StopOrder
	if req.RouteID != nil {
		routeID = validators.MustObjectID(*req.RouteID)
		if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
			return nil, lookupErr(err, msgRouteDoesNotExist)
		}
		updates["route_id"] = routeID
	}
	if req.StopName != nil {
		name = *req.StopName
		updates["stop_name"] = name
	}
	if req.StopOrder != nil {
		order = *req.StopOrder
		updates["stop_order"] = order
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if len(updates) == 0 {
		return current, nil
	}

	duplicate, err := s.stopRepo.FindDuplicate(ctx, routeID, name, order, &id)
	if err := checkUnique(err, func() bool { return duplicate != nil }, msgRouteStopExists); err != nil {
		return nil, err
	}

	stop, err := s.stopRepo.Update(ctx, id, updates)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NewNotFoundError(msgRouteStopNotFound)
		}
		return nil, writeErr(err, msgRouteStopExists)
	}

	s.audit.Record(ctx, "route_stop.update", fmt.Sprintf("Updated stop %s", stop.StopName), "route_stop", stop.ID)
	return stop, nil
}

func (s *routeService) DeleteStop(ctx context.Context, id primitive.ObjectID) (*models.RouteStop, error) {
	stop, err := s.stopRepo.Delete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgRouteStopNotFound)
	}

	s.audit.Record(ctx, "route_stop.delete", fmt.Sprintf("Deleted stop %s", stop.StopName), "route_stop", stop.ID)
	return stop, nil
}
