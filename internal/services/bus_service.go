package services

import (
	"context"
	"fmt"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"
	"fleetadmin/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgBusNotFound      = "Bus not found."
	msgBusPlateExists   = "A bus with this plate number already exists."
	msgBusNumberExists  = "A bus with this bus number already exists."
	msgBusStatusMissing = "Bus status not found."
	msgBusStatusExists  = "This bus already has a status record."
)

type BusService interface {
	CreateBus(ctx context.Context, req *validators.BusCreateRequest) (*models.Bus, error)
	GetBus(ctx context.Context, id primitive.ObjectID) (*models.Bus, error)
	UpdateBus(ctx context.Context, id primitive.ObjectID, req *validators.BusUpdateRequest) (*models.Bus, error)
	DeleteBus(ctx context.Context, id primitive.ObjectID) (*models.Bus, error)
	ListBuses(ctx context.Context, filter interfaces.BusFilter, params *utils.PaginationParams) ([]*models.Bus, int64, error)
	Overview(ctx context.Context) ([]*models.BusOverview, error)
}

type busService struct {
	busRepo interfaces.BusRepository
	audit   SystemLogService
	logger  *logger.Logger
}

func NewBusService(busRepo interfaces.BusRepository, audit SystemLogService, log *logger.Logger) BusService {
	return &busService{busRepo: busRepo, audit: audit, logger: log}
}

func (s *busService) CreateBus(ctx context.Context, req *validators.BusCreateRequest) (*models.Bus, error) {
	if err := s.ensureUnique(ctx, req.PlateNumber, req.BusNumber, primitive.NilObjectID); err != nil {
		return nil, err
	}

	bus := &models.Bus{
		BusNumber:   req.BusNumber,
		PlateNumber: req.PlateNumber,
		Capacity:    req.Capacity,
		Status:      models.BusStateActive,
	}
	if req.Status != "" {
		bus.Status = models.BusState(req.Status)
	}

	if err := s.busRepo.Create(ctx, bus); err != nil {
		return nil, writeErr(err, msgBusPlateExists)
	}

	s.audit.Record(ctx, "bus.create", fmt.Sprintf("Created bus %s", bus.BusNumber), "bus", bus.ID)
	return bus, nil
}

func (s *busService) GetBus(ctx context.Context, id primitive.ObjectID) (*models.Bus, error) {
	bus, err := s.busRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgBusNotFound)
	}
	return bus, nil
}

// UpdateBus re-checks uniqueness against the merged plate and bus numbers.
func (s *busService) UpdateBus(ctx context.Context, id primitive.ObjectID, req *validators.BusUpdateRequest) (*models.Bus, error) {
	current, err := s.busRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgBusNotFound)
	}

	updates := map[string]interface{}{}
	plate, number := current.PlateNumber, current.BusNumber
	if req.PlateNumber != nil {
		plate = *req.PlateNumber
		updates["plate_number"] = plate
	}
	if req.BusNumber != nil {
		number = *req.BusNumber
		updates["bus_number"] = number
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Status != nil {
		updates["status"] = models.BusState(*req.Status)
	}
	if len(updates) == 0 {
		return current, nil
	}

	if err := s.ensureUnique(ctx, plate, number, id); err != nil {
		return nil, err
	}

	bus, err := s.busRepo.Update(ctx, id, updates)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NewNotFoundError(msgBusNotFound)
		}
		return nil, writeErr(err, msgBusPlateExists)
	}

	s.audit.Record(ctx, "bus.update", fmt.Sprintf("Updated bus %s", bus.BusNumber), "bus", bus.ID)
	return bus, nil
}

func (s *busService) DeleteBus(ctx context.Context, id primitive.ObjectID) (*models.Bus, error) {
	bus, err := s.busRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgBusNotFound)
	}

	s.audit.Record(ctx, "bus.delete", fmt.Sprintf("Deleted bus %s", bus.BusNumber), "bus", bus.ID)
	return bus, nil
}

func (s *busService) ListBuses(ctx context.Context, filter interfaces.BusFilter, params *utils.PaginationParams) ([]*models.Bus, int64, error) {
	buses, total, err := s.busRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return buses, total, nil
}

func (s *busService) Overview(ctx context.Context) ([]*models.BusOverview, error) {
	overview, err := s.busRepo.Overview(ctx)
	if err != nil {
		return nil, utils.WrapInternal(err)
	}
	return overview, nil
}

// ensureUnique checks the plate first, then the bus number, ignoring self.
func (s *busService) ensureUnique(ctx context.Context, plate, number string, self primitive.ObjectID) error {
	byPlate, err := s.busRepo.GetByPlateNumber(ctx, plate)
	if err := checkUnique(err, func() bool { return byPlate.ID != self }, msgBusPlateExists); err != nil {
		return err
	}

	byNumber, err := s.busRepo.GetByBusNumber(ctx, number)
	return checkUnique(err, func() bool { return byNumber.ID != self }, msgBusNumberExists)
}

type BusStatusService interface {
	CreateStatus(ctx context.Context, req *validators.BusStatusCreateRequest) (*models.BusStatus, error)
	GetStatus(ctx context.Context, id primitive.ObjectID) (*models.BusStatus, error)
	GetStatusByBus(ctx context.Context, busID primitive.ObjectID) (*models.BusStatus, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, req *validators.BusStatusUpdateRequest) (*models.BusStatus, error)
	DeleteStatus(ctx context.Context, id primitive.ObjectID) (*models.BusStatus, error)
	ListStatuses(ctx context.Context, params *utils.PaginationParams) ([]*models.BusStatus, int64, error)
}

type busStatusService struct {
	statusRepo interfaces.BusStatusRepository
	busRepo    interfaces.BusRepository
	audit      SystemLogService
}

func NewBusStatusService(statusRepo interfaces.BusStatusRepository, busRepo interfaces.BusRepository, audit SystemLogService) BusStatusService {
	return &busStatusService{statusRepo: statusRepo, busRepo: busRepo, audit: audit}
}

func (s *busStatusService) CreateStatus(ctx context.Context, req *validators.BusStatusCreateRequest) (*models.BusStatus, error) {
	busID := validators.MustObjectID(req.BusID)
	if _, err := s.busRepo.GetByID(ctx, busID); err != nil {
		return nil, lookupErr(err, msgBusNotFound)
	}

	existing, err := s.statusRepo.GetByBusID(ctx, busID)
	if err := checkUnique(err, func() bool { return existing != nil }, msgBusStatusExists); err != nil {
		return nil, err
	}

	status := &models.BusStatus{
		BusID:           busID,
		OccupancyCount:  req.OccupancyCount,
		OccupancyStatus: models.OccupancyEmpty,
		DelayMinutes:    req.DelayMinutes,
		IsSkippingStops: req.IsSkippingStops,
	}
	if req.OccupancyStatus != "" {
		status.OccupancyStatus = models.OccupancyStatus(req.OccupancyStatus)
	}

	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, writeErr(err, msgBusStatusExists)
	}

	s.audit.Record(ctx, "bus_status.create", "Created bus status", "bus_status", status.ID)
	return status, nil
}

func (s *busStatusService) GetStatus(ctx context.Context, id primitive.ObjectID) (*models.BusStatus, error) {
	status, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgBusStatusMissing)
	}
	return status, nil
}

func (s *busStatusService) GetStatusByBus(ctx context.Context, busID primitive.ObjectID) (*models.BusStatus, error) {
	status, err := s.statusRepo.GetByBusID(ctx, busID)
	if err != nil {
		return nil, lookupErr(err, msgBusStatusMissing)
	}
	return status, nil
}

// UpdateStatus only applies the live fields; bus_id cannot be moved.
func (s *busStatusService) UpdateStatus(ctx context.Context, id primitive.ObjectID, req *validators.BusStatusUpdateRequest) (*models.BusStatus, error) {
	updates := map[string]interface{}{}
	if req.OccupancyCount != nil {
		updates["occupancy_count"] = *req.OccupancyCount
	}
	if req.OccupancyStatus != nil {
		updates["occupancy_status"] = models.OccupancyStatus(*req.OccupancyStatus)
	}
	if req.DelayMinutes != nil {
		updates["delay_minutes"] = *req.DelayMinutes
	}
	if req.IsSkippingStops != nil {
		updates["is_skipping_stops"] = *req.IsSkippingStops
	}
	if len(updates) == 0 {
		return s.GetStatus(ctx, id)
	}

	status, err := s.statusRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, lookupErr(err, msgBusStatusMissing)
	}

	s.audit.Record(ctx, "bus_status.update", "Updated bus status", "bus_status", status.ID)
	return status, nil
}

func (s *busStatusService) DeleteStatus(ctx context.Context, id primitive.ObjectID) (*models.BusStatus, error) {
	status, err := s.statusRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgBusStatusMissing)
	}

	s.audit.Record(ctx, "bus_status.delete", "Deleted bus status", "bus_status", status.ID)
	return status, nil
}

func (s *busStatusService) ListStatuses(ctx context.Context, params *utils.PaginationParams) ([]*models.BusStatus, int64, error) {
	statuses, total, err := s.statusRepo.List(ctx, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return statuses, total, nil
}
