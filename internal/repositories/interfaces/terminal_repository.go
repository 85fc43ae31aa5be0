package interfaces

import (
	"context"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TerminalRepository interface {
	Create(ctx context.Context, terminal *models.Terminal) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Terminal, error)
	GetByName(ctx context.Context, name string) (*models.Terminal, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Terminal, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Terminal, error)
	List(ctx context.Context, filter TerminalFilter, params *utils.PaginationParams) ([]*models.Terminal, int64, error)
}

type TerminalLogRepository interface {
	Create(ctx context.Context, log *models.TerminalLog) error
	List(ctx context.Context, filter TerminalLogFilter, params *utils.PaginationParams) ([]*models.TerminalLog, int64, error)
}
