package services

import (
	"context"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SystemLogService interface {
	// Record writes an audit entry for the user on ctx. Failures are logged,
	// never returned, so auditing cannot fail the request.
	Record(ctx context.Context, action, description, entityType string, entityID primitive.ObjectID)
	List(ctx context.Context, filter interfaces.SystemLogFilter, params *utils.PaginationParams) ([]*models.SystemLog, int64, error)
}

type systemLogService struct {
	repo   interfaces.SystemLogRepository
	logger *logger.Logger
}

func NewSystemLogService(repo interfaces.SystemLogRepository, log *logger.Logger) SystemLogService {
	return &systemLogService{repo: repo, logger: log}
}

func (s *systemLogService) Record(ctx context.Context, action, description, entityType string, entityID primitive.ObjectID) {
	entry := &models.SystemLog{
		UserID:      actorFrom(ctx),
		Action:      action,
		Description: description,
		EntityType:  entityType,
	}
	if !entityID.IsZero() {
		entry.EntityID = &entityID
	}

	s.logger.WithContext(ctx).LogAdminAction(actorHex(ctx), action, entityType, entityID)

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to write system log")
	}
}

func (s *systemLogService) List(ctx context.Context, filter interfaces.SystemLogFilter, params *utils.PaginationParams) ([]*models.SystemLog, int64, error) {
	logs, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return logs, total, nil
}
