package interfaces

import (
	"context"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	List(ctx context.Context, filter NotificationFilter, params *utils.PaginationParams) ([]*models.Notification, int64, error)
}

type UserNotificationRepository interface {
	CreateMany(ctx context.Context, entries []*models.UserNotification) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.UserNotification, error)
	// ListByUser joins each entry with its notification.
	ListByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, params *utils.PaginationParams) ([]*models.UserNotification, int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (*models.UserNotification, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.UserSubscription) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.UserSubscription, error)
	Find(ctx context.Context, userID primitive.ObjectID, routeID, busID *primitive.ObjectID) (*models.UserSubscription, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.UserSubscription, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.UserSubscription, error)
	// SubscriberIDs returns distinct users subscribed to the route or the bus.
	SubscriberIDs(ctx context.Context, routeID, busID *primitive.ObjectID) ([]primitive.ObjectID, error)
}

type SystemLogRepository interface {
	Create(ctx context.Context, log *models.SystemLog) error
	List(ctx context.Context, filter SystemLogFilter, params *utils.PaginationParams) ([]*models.SystemLog, int64, error)
}
