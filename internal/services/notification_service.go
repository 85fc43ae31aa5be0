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
	msgNotificationNotFound     = "Notification not found."
	msgUserNotificationNotFound = "User notification not found."
	msgSenderNotFound           = "Sender not found."
	msgSenderRequired           = "sender_id is required"
)

// NotificationRepos groups the repositories notification fan-out reads from.
type NotificationRepos struct {
	Notifications     interfaces.NotificationRepository
	UserNotifications interfaces.UserNotificationRepository
	Subscriptions     interfaces.SubscriptionRepository
	Users             interfaces.UserRepository
	Buses             interfaces.BusRepository
	Routes            interfaces.RouteRepository
	Terminals         interfaces.TerminalRepository
}

type NotificationService interface {
	CreateNotification(ctx context.Context, req *validators.NotificationCreateRequest) (*models.Notification, error)
	GetNotification(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	ListNotifications(ctx context.Context, filter interfaces.NotificationFilter, params *utils.PaginationParams) ([]*models.Notification, int64, error)

	ListInbox(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, params *utils.PaginationParams) ([]*models.UserNotification, int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (*models.UserNotification, error)
}

type notificationService struct {
	repos  NotificationRepos
	audit  SystemLogService
	logger *logger.Logger
}

func NewNotificationService(repos NotificationRepos, audit SystemLogService, log *logger.Logger) NotificationService {
	return &notificationService{repos: repos, audit: audit, logger: log}
}

// CreateNotification stores the notification and one inbox row per
// recipient. Nothing is delivered outside the inbox.
func (s *notificationService) CreateNotification(ctx context.Context, req *validators.NotificationCreateRequest) (*models.Notification, error) {
	senderID := validators.OptionalObjectID(req.SenderID)
	if senderID == nil {
		senderID = actorFrom(ctx)
	}
	if senderID == nil {
		return nil, utils.NewBadRequestError(msgSenderRequired)
	}
	if _, err := s.repos.Users.GetByID(ctx, *senderID); err != nil {
		return nil, lookupErr(err, msgSenderNotFound)
	}

	notification := &models.Notification{
		SenderID:   *senderID,
		BusID:      validators.OptionalObjectID(req.BusID),
		RouteID:    validators.OptionalObjectID(req.RouteID),
		TerminalID: validators.OptionalObjectID(req.TerminalID),
		Title:      req.Title,
		Message:    req.Message,
		Type:       models.NotificationType(req.Type),
		Priority:   models.PriorityMedium,
		Scope:      models.NotificationScope(req.Scope),
	}
	if req.Priority != "" {
		notification.Priority = models.NotificationPriority(req.Priority)
	}

	if err := s.checkReferences(ctx, notification); err != nil {
		return nil, err
	}

	recipients, err := s.recipients(ctx, notification)
	if err != nil {
		return nil, utils.WrapInternal(err)
	}
	notification.RecipientCount = len(recipients)

	if err := s.repos.Notifications.Create(ctx, notification); err != nil {
		return nil, utils.WrapInternal(err)
	}

	entries := make([]*models.UserNotification, len(recipients))
	for i, userID := range recipients {
		entries[i] = &models.UserNotification{UserID: userID, NotificationID: notification.ID}
	}
	if err := s.repos.UserNotifications.CreateMany(ctx, entries); err != nil {
		return nil, utils.WrapInternal(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"notification_id": notification.ID.Hex(),
		"scope":           notification.Scope,
		"recipients":      notification.RecipientCount,
	}).Info("Notification created")
	s.audit.Record(ctx, "notification.create", fmt.Sprintf("Sent %s notification %q", notification.Scope, notification.Title), "notification", notification.ID)
	return notification, nil
}

// checkReferences verifies every reference the notification carries.
func (s *notificationService) checkReferences(ctx context.Context, n *models.Notification) error {
	if n.BusID != nil {
		if _, err := s.repos.Buses.GetByID(ctx, *n.BusID); err != nil {
			return lookupErr(err, msgBusNotFound)
		}
	}
	if n.RouteID != nil {
		if _, err := s.repos.Routes.GetByID(ctx, *n.RouteID); err != nil {
			return lookupErr(err, msgRouteNotFound)
		}
	}
	if n.TerminalID != nil {
		if _, err := s.repos.Terminals.GetByID(ctx, *n.TerminalID); err != nil {
			return lookupErr(err, msgTerminalNotFound)
		}
	}
	return nil
}

// recipients resolves the inbox owners. System scope reaches every active
// user; route and bus scopes reach subscribers of that reference only.
// Terminals have no subscribers.
func (s *notificationService) recipients(ctx context.Context, n *models.Notification) ([]primitive.ObjectID, error) {
	switch n.Scope {
	case models.ScopeSystem:
		return s.repos.Users.ActiveIDs(ctx)
	case models.ScopeRoute:
		return s.repos.Subscriptions.SubscriberIDs(ctx, n.RouteID, nil)
	case models.ScopeBus:
		return s.repos.Subscriptions.SubscriberIDs(ctx, nil, n.BusID)
	default:
		return nil, nil
	}
}

func (s *notificationService) GetNotification(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	notification, err := s.repos.Notifications.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgNotificationNotFound)
	}
	return notification, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, filter interfaces.NotificationFilter, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	notifications, total, err := s.repos.Notifications.List(ctx, filter, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return notifications, total, nil
}

func (s *notificationService) ListInbox(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, params *utils.PaginationParams) ([]*models.UserNotification, int64, error) {
	if _, err := s.repos.Users.GetByID(ctx, userID); err != nil {
		return nil, 0, lookupErr(err, msgUserNotFound)
	}
	entries, total, err := s.repos.UserNotifications.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return entries, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.UserNotification, error) {
	entry, err := s.repos.UserNotifications.MarkRead(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgUserNotificationNotFound)
	}
	return entry, nil
}
