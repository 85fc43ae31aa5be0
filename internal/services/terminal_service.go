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
	msgTerminalNotFound   = "Terminal not found."
	msgTerminalNameExists = "A terminal with this name already exists."
)

type TerminalService interface {
	CreateTerminal(ctx context.Context, req *validators.TerminalCreateRequest) (*models.Terminal, error)
	GetTerminal(ctx context.Context, id primitive.ObjectID) (*models.Terminal, error)
	UpdateTerminal(ctx context.Context, id primitive.ObjectID, req *validators.TerminalUpdateRequest) (*models.Terminal, error)
	DeleteTerminal(ctx context.Context, id primitive.ObjectID) (*models.Terminal, error)
	ListTerminals(ctx context.Context, filter interfaces.TerminalFilter, params *utils.PaginationParams) ([]*models.Terminal, int64, error)

	CreateLog(ctx context.Context, req *validators.TerminalLogCreateRequest) (*models.TerminalLog, error)
	ListLogs(ctx context.Context, filter interfaces.TerminalLogFilter, params *utils.PaginationParams) ([]*models.TerminalLog, int64, error)
}

type terminalService struct {
	terminalRepo interfaces.TerminalRepository
	logRepo      interfaces.TerminalLogRepository
	busRepo      interfaces.BusRepository
	geocoder     maps.Geocoder
	audit        SystemLogService
	logger       *logger.Logger
}

func NewTerminalService(
	terminalRepo interfaces.TerminalRepository,
	logRepo interfaces.TerminalLogRepository,
	busRepo interfaces.BusRepository,
	geocoder maps.Geocoder,
	audit SystemLogService,
	log *logger.Logger,
) TerminalService {
	return &terminalService{
		terminalRepo: terminalRepo,
		logRepo:      logRepo,
		busRepo:      busRepo,
		geocoder:     geocoder,
		audit:        audit,
		logger:       log,
	}
}

func (s *terminalService) CreateTerminal(ctx context.Context, req *validators.TerminalCreateRequest) (*models.Terminal, error) {
	existing, err := s.terminalRepo.GetByName(ctx, req.Name)
	if err := checkUnique(err, func() bool { return existing != nil }, msgTerminalNameExists); err != nil {
		return nil, err
	}

	terminal := &models.Terminal{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    models.TerminalStatusActive,
	}
	if req.Status != "" {
		terminal.Status = models.TerminalStatus(req.Status)
	}
	if terminal.Latitude == nil || terminal.Longitude == nil {
		if loc := s.geocode(ctx, terminal.Address); loc != nil {
			terminal.Latitude = &loc.Latitude
			terminal.Longitude = &loc.Longitude
		}
	}

	if err := s.terminalRepo.Create(ctx, terminal); err != nil {
		return nil, writeErr(err, msgTerminalNameExists)
	}

	s.audit.Record(ctx, "terminal.create", fmt.Sprintf("Created terminal %s", terminal.Name), "terminal", terminal.ID)
	return terminal, nil
}

func (s *terminalService) GetTerminal(ctx context.Context, id primitive.ObjectID) (*models.Terminal, error) {
	terminal, err := s.terminalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgTerminalNotFound)
	}
	return terminal, nil
}

// UpdateTerminal geocodes a changed address unless the request also carries
// both coordinates.
func (s *terminalService) UpdateTerminal(ctx context.Context, id primitive.ObjectID, req *validators.TerminalUpdateRequest) (*models.Terminal, error) {
	current, err := s.terminalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgTerminalNotFound)
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != current.Name {
		existing, err := s.terminalRepo.GetByName(ctx, *req.Name)
		if err := checkUnique(err, func() bool { return existing.ID != id }, msgTerminalNameExists); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.Status != nil {
		updates["status"] = models.TerminalStatus(*req.Status)
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.Address != nil {
		updates["address"] = *req.Address
		if req.Latitude == nil || req.Longitude == nil {
			if loc := s.geocode(ctx, *req.Address); loc != nil {
				updates["latitude"] = loc.Latitude
				updates["longitude"] = loc.Longitude
			}
		}
	}
	if len(updates) == 0 {
		return current, nil
	}

	terminal, err := s.terminalRepo.Update(ctx, id, updates)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NewNotFoundError(msgTerminalNotFound)
		}
		return nil, writeErr(err, msgTerminalNameExists)
	}

	s.audit.Record(ctx, "terminal.update", fmt.Sprintf("Updated terminal %s", terminal.Name), "terminal", terminal.ID)
	return terminal, nil
}

func (s *terminalService) DeleteTerminal(ctx context.Context, id primitive.ObjectID) (*models.Terminal, error) {
	terminal, err := s.terminalRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgTerminalNotFound)
	}

	s.audit.Record(ctx, "terminal.delete", fmt.Sprintf("Deleted terminal %s", terminal.Name), "terminal", terminal.ID)
	return terminal, nil
}

func (s *terminalService) ListTerminals(ctx context.Context, filter interfaces.TerminalFilter, params *utils.PaginationParams) ([]*models.Terminal, int64, error) {
	terminals, total, err := s.terminalRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return terminals, total, nil
}

func (s *terminalService) geocode(ctx context.Context, address string) *maps.Location {
	if s.geocoder == nil || address == "" {
		return nil
	}
	loc, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if !errors.Is(err, maps.ErrNoResults) {
			s.logger.WithError(err).WithField("address", address).Warn("Failed to geocode terminal address")
		}
		return nil
	}
	return loc
}

func (s *terminalService) CreateLog(ctx context.Context, req *validators.TerminalLogCreateRequest) (*models.TerminalLog, error) {
	terminalID := validators.MustObjectID(req.TerminalID)
	if _, err := s.terminalRepo.GetByID(ctx, terminalID); err != nil {
		return nil, lookupErr(err, msgTerminalNotFound)
	}
	busID := validators.MustObjectID(req.BusID)
	if _, err := s.busRepo.GetByID(ctx, busID); err != nil {
		return nil, lookupErr(err, msgBusNotFound)
	}

	entry := &models.TerminalLog{
		TerminalID: terminalID,
		BusID:      busID,
		EventType:  models.TerminalEventType(req.EventType),
		Remarks:    req.Remarks,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, utils.WrapInternal(err)
	}

	s.audit.Record(ctx, "terminal_log.create", fmt.Sprintf("Logged %s event", entry.EventType), "terminal_log", entry.ID)
	return entry, nil
}

func (s *terminalService) ListLogs(ctx context.Context, filter interfaces.TerminalLogFilter, params *utils.PaginationParams) ([]*models.TerminalLog, int64, error) {
	logs, total, err := s.logRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return logs, total, nil
}
