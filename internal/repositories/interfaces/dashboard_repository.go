package interfaces

import (
	"context"
	"time"

	"fleetadmin/internal/models"
)

type DashboardRepository interface {
	OverviewCounts(ctx context.Context) (*models.OverviewCounts, error)
	LiveBusCounts(ctx context.Context) (*models.LiveBusCounts, error)
	AssignmentsByStatus(ctx context.Context, since time.Time) (map[string]int64, error)
	RecentNotifications(ctx context.Context, priority models.NotificationPriority, limit int64) ([]*models.Notification, error)

	ActiveBusesPerRoute(ctx context.Context) ([]*models.ActiveBusPerRoute, error)
	RoutePerformance(ctx context.Context) ([]*models.RoutePerformance, error)
	OccupancyPerRoute(ctx context.Context) ([]*models.RouteOccupancy, error)
	TopRoutes(ctx context.Context, limit int64) ([]*models.SubscriptionRank, error)
	TopBuses(ctx context.Context, limit int64) ([]*models.SubscriptionRank, error)
	NotificationVolume(ctx context.Context, since time.Time) ([]*models.NotificationVolume, error)
	UserGrowth(ctx context.Context, since time.Time) ([]*models.UserGrowth, error)
}
