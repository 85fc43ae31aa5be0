package services

import (
	"context"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgAssignmentNotFound    = "Bus assignment not found."
	msgAssignmentEnded       = "This assignment has already ended."
	msgBusAlreadyAssigned    = "This bus already has an active assignment."
	msgDriverAlreadyAssigned = "This driver already has an active assignment."
	msgOperatorNotFound      = "Operator not found."
	msgNotAnOperator         = "The assigned user is not an operator."
)

// AssignmentRepos groups the repositories an assignment references.
type AssignmentRepos struct {
	Assignments interfaces.BusAssignmentRepository
	Buses       interfaces.BusRepository
	Drivers     interfaces.DriverRepository
	Users       interfaces.UserRepository
	Routes      interfaces.RouteRepository
	Terminals   interfaces.TerminalRepository
}

type BusAssignmentService interface {
	CreateAssignment(ctx context.Context, req *validators.BusAssignmentCreateRequest) (*models.BusAssignment, error)
	GetAssignment(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error)
	UpdateAssignment(ctx context.Context, id primitive.ObjectID, req *validators.BusAssignmentUpdateRequest) (*models.BusAssignment, error)
	EndAssignment(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error)
	DeleteAssignment(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error)
	ListAssignments(ctx context.Context, filter interfaces.BusAssignmentFilter, params *utils.PaginationParams) ([]*models.BusAssignment, int64, error)
}

type busAssignmentService struct {
	repos AssignmentRepos
	audit SystemLogService
	now   func() time.Time
}

func NewBusAssignmentService(repos AssignmentRepos, audit SystemLogService) BusAssignmentService {
	return &busAssignmentService{repos: repos, audit: audit, now: time.Now}
}

func (s *busAssignmentService) CreateAssignment(ctx context.Context, req *validators.BusAssignmentCreateRequest) (*models.BusAssignment, error) {
	assignment := &models.BusAssignment{
		BusID:      validators.MustObjectID(req.BusID),
		DriverID:   validators.MustObjectID(req.DriverID),
		OperatorID: validators.MustObjectID(req.OperatorID),
		RouteID:    validators.MustObjectID(req.RouteID),
		TerminalID: validators.MustObjectID(req.TerminalID),
		Status:     models.AssignmentStatusActive,
		StartedAt:  s.now().UTC(),
	}

	if err := s.checkBus(ctx, assignment.BusID); err != nil {
		return nil, err
	}
	if err := s.checkDriverRef(ctx, assignment.DriverID, models.AssignmentStatusActive, nil); err != nil {
		return nil, err
	}
	if err := s.checkOperator(ctx, assignment.OperatorID); err != nil {
		return nil, err
	}
	if err := s.checkRoute(ctx, assignment.RouteID); err != nil {
		return nil, err
	}
	if err := s.checkTerminal(ctx, assignment.TerminalID); err != nil {
		return nil, err
	}

	if err := s.repos.Assignments.Create(ctx, assignment); err != nil {
		return nil, utils.WrapInternal(err)
	}

	s.audit.Record(ctx, "bus_assignment.create", "Assigned bus to driver", "bus_assignment", assignment.ID)
	return assignment, nil
}

func (s *busAssignmentService) GetAssignment(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error) {
	assignment, err := s.repos.Assignments.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgAssignmentNotFound)
	}
	return assignment, nil
}

// UpdateAssignment re-validates only the references that change.
func (s *busAssignmentService) UpdateAssignment(ctx context.Context, id primitive.ObjectID, req *validators.BusAssignmentUpdateRequest) (*models.BusAssignment, error) {
	current, err := s.repos.Assignments.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgAssignmentNotFound)
	}

	updates := map[string]interface{}{}
	if req.DriverID != nil {
		driverID := validators.MustObjectID(*req.DriverID)
		if driverID != current.DriverID {
			if err := s.checkDriverRef(ctx, driverID, current.Status, &id); err != nil {
				return nil, err
			}
			updates["driver_id"] = driverID
		}
	}
	if req.OperatorID != nil {
		operatorID := validators.MustObjectID(*req.OperatorID)
		if operatorID != current.OperatorID {
			if err := s.checkOperator(ctx, operatorID); err != nil {
				return nil, err
			}
			updates["operator_id"] = operatorID
		}
	}
	if req.RouteID != nil {
		routeID := validators.MustObjectID(*req.RouteID)
		if routeID != current.RouteID {
			if err := s.checkRoute(ctx, routeID); err != nil {
				return nil, err
			}
			updates["route_id"] = routeID
		}
	}
	if req.TerminalID != nil {
		terminalID := validators.MustObjectID(*req.TerminalID)
		if terminalID != current.TerminalID {
			if err := s.checkTerminal(ctx, terminalID); err != nil {
				return nil, err
			}
			updates["terminal_id"] = terminalID
		}
	}
	if len(updates) == 0 {
		return current, nil
	}

	assignment, err := s.repos.Assignments.Update(ctx, id, updates)
	if err != nil {
		return nil, lookupErr(err, msgAssignmentNotFound)
	}

	s.audit.Record(ctx, "bus_assignment.update", "Updated bus assignment", "bus_assignment", assignment.ID)
	return assignment, nil
}

func (s *busAssignmentService) EndAssignment(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error) {
	current, err := s.repos.Assignments.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgAssignmentNotFound)
	}
	if current.Status == models.AssignmentStatusEnded {
		return nil, utils.NewConflictError(msgAssignmentEnded)
	}

	assignment, err := s.repos.Assignments.Update(ctx, id, map[string]interface{}{
		"status":   models.AssignmentStatusEnded,
		"ended_at": s.now().UTC(),
	})
	if err != nil {
		return nil, lookupErr(err, msgAssignmentNotFound)
	}

	s.audit.Record(ctx, "bus_assignment.end", "Ended bus assignment", "bus_assignment", assignment.ID)
	return assignment, nil
}

func (s *busAssignmentService) DeleteAssignment(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error) {
	assignment, err := s.repos.Assignments.SoftDelete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgAssignmentNotFound)
	}

	s.audit.Record(ctx, "bus_assignment.delete", "Deleted bus assignment", "bus_assignment", assignment.ID)
	return assignment, nil
}

func (s *busAssignmentService) ListAssignments(ctx context.Context, filter interfaces.BusAssignmentFilter, params *utils.PaginationParams) ([]*models.BusAssignment, int64, error) {
	assignments, total, err := s.repos.Assignments.List(ctx, filter, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return assignments, total, nil
}

func (s *busAssignmentService) checkBus(ctx context.Context, busID primitive.ObjectID) error {
	if _, err := s.repos.Buses.GetByID(ctx, busID); err != nil {
		return lookupErr(err, msgBusNotFound)
	}
	active, err := s.repos.Assignments.GetActiveByBus(ctx, busID, nil)
	return checkUnique(err, func() bool { return active != nil }, msgBusAlreadyAssigned)
}

// checkDriverRef verifies the driver exists. The one-active-assignment rule
// only applies when the assignment being written is itself active.
func (s *busAssignmentService) checkDriverRef(ctx context.Context, driverID primitive.ObjectID, status models.AssignmentStatus, exclude *primitive.ObjectID) error {
	if _, err := s.repos.Drivers.GetByID(ctx, driverID); err != nil {
		return lookupErr(err, msgDriverNotFound)
	}
	if status != models.AssignmentStatusActive {
		return nil
	}
	active, err := s.repos.Assignments.GetActiveByDriver(ctx, driverID, exclude)
	return checkUnique(err, func() bool { return active != nil }, msgDriverAlreadyAssigned)
}

func (s *busAssignmentService) checkOperator(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return lookupErr(err, msgOperatorNotFound)
	}
	if user.Role != models.RoleOperator {
		return utils.NewBadRequestError(msgNotAnOperator)
	}
	return nil
}

func (s *busAssignmentService) checkRoute(ctx context.Context, routeID primitive.ObjectID) error {
	if _, err := s.repos.Routes.GetByID(ctx, routeID); err != nil {
		return lookupErr(err, msgRouteNotFound)
	}
	return nil
}

func (s *busAssignmentService) checkTerminal(ctx context.Context, terminalID primitive.ObjectID) error {
	if _, err := s.repos.Terminals.GetByID(ctx, terminalID); err != nil {
		return lookupErr(err, msgTerminalNotFound)
	}
	return nil
}
