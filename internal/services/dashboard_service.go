package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/pkg/cache"
	"fleetadmin/pkg/export"
	"fleetadmin/pkg/logger"
)

const (
	ReportActiveBusesPerRoute = "active-buses-per-route"
	ReportRoutePerformance    = "route-performance"
	ReportOccupancyPerRoute   = "occupancy-per-route"
	ReportTopRoutes           = "top-routes"
	ReportTopBuses            = "top-buses"
	ReportNotificationVolume  = "notification-volume"
	ReportUserGrowth          = "user-growth"

	msgReportNotFound = "Report not found."

	recentAlertLimit         = 5
	topSubscribedLimit       = 10
	notificationVolumeDays   = 30
	userGrowthMonths         = 12
	dashboardOverviewKeyName = "overview"
)

// ReportNames lists every report in display order.
var ReportNames = []string{
	ReportActiveBusesPerRoute,
	ReportRoutePerformance,
	ReportOccupancyPerRoute,
	ReportTopRoutes,
	ReportTopBuses,
	ReportNotificationVolume,
	ReportUserGrowth,
}

// Report is a named aggregation. Headers and Rows hold the same data
// formatted for export.
type Report struct {
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	GeneratedAt time.Time   `json:"generated_at"`
	Data        interface{} `json:"data"`
	Headers     []string    `json:"-"`
	Rows        [][]string  `json:"-"`
}

type DashboardService interface {
	Overview(ctx context.Context) (*models.DashboardOverview, error)
	Report(ctx context.Context, name string) (*Report, error)
	ExportReport(ctx context.Context, name string) ([]byte, string, error)
}

type dashboardService struct {
	repo   interfaces.DashboardRepository
	cache  CacheService
	logger *logger.Logger
	now    func() time.Time
}

// NewDashboardService builds the dashboard service. cacheService may be nil.
func NewDashboardService(repo interfaces.DashboardRepository, cacheService CacheService, log *logger.Logger) DashboardService {
	return &dashboardService{repo: repo, cache: cacheService, logger: log, now: time.Now}
}

// Overview is served from cache for a short TTL.
func (s *dashboardService) Overview(ctx context.Context) (*models.DashboardOverview, error) {
	key := utils.CacheDashboardPrefix + dashboardOverviewKeyName
	if s.cache != nil {
		var cached models.DashboardOverview
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WithError(err).Warn("Failed to read dashboard cache")
		}
	}

	counts, err := s.repo.OverviewCounts(ctx)
	if err != nil {
		return nil, utils.WrapInternal(err)
	}
	live, err := s.repo.LiveBusCounts(ctx)
	if err != nil {
		return nil, utils.WrapInternal(err)
	}
	today, err := s.repo.AssignmentsByStatus(ctx, utils.StartOfDay(s.now()))
	if err != nil {
		return nil, utils.WrapInternal(err)
	}
	alerts, err := s.repo.RecentNotifications(ctx, models.PriorityHigh, recentAlertLimit)
	if err != nil {
		return nil, utils.WrapInternal(err)
	}
	if alerts == nil {
		alerts = []*models.Notification{}
	}

	overview := &models.DashboardOverview{
		Counts:           *counts,
		LiveBuses:        *live,
		TodayAssignments: today,
		RecentHighAlerts: alerts,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, overview, utils.CacheTTLDashboard); err != nil {
			s.logger.WithError(err).Warn("Failed to cache dashboard overview")
		}
	}
	return overview, nil
}

func (s *dashboardService) Report(ctx context.Context, name string) (*Report, error) {
	report := &Report{Name: name, GeneratedAt: s.now().UTC()}

	switch name {
	case ReportActiveBusesPerRoute:
		rows, err := s.repo.ActiveBusesPerRoute(ctx)
		if err != nil {
			return nil, utils.WrapInternal(err)
		}
		report.Title = "Active buses per route"
		report.Data = rows
		report.Headers = []string{"Route code", "Route name", "Active buses"}
		for _, r := range rows {
			report.Rows = append(report.Rows, []string{r.RouteCode, r.RouteName, itoa(r.ActiveBusCount)})
		}

	case ReportRoutePerformance:
		rows, err := s.repo.RoutePerformance(ctx)
		if err != nil {
			return nil, utils.WrapInternal(err)
		}
		report.Title = "Route performance"
		report.Data = rows
		report.Headers = []string{"Route code", "Route name", "Avg delay (min)", "Skipped stops"}
		for _, r := range rows {
			report.Rows = append(report.Rows, []string{
				r.RouteCode, r.RouteName, strconv.FormatFloat(r.AvgDelayMinutes, 'f', 1, 64), itoa(r.SkippedStopsCount),
			})
		}

	case ReportOccupancyPerRoute:
		rows, err := s.repo.OccupancyPerRoute(ctx)
		if err != nil {
			return nil, utils.WrapInternal(err)
		}
		report.Title = "Occupancy per route"
		report.Data = rows
		report.Headers = []string{"Route code", "Route name", "Passengers"}
		for _, r := range rows {
			report.Rows = append(report.Rows, []string{r.RouteCode, r.RouteName, itoa(r.TotalOccupancy)})
		}

	case ReportTopRoutes, ReportTopBuses:
		var rows []*models.SubscriptionRank
		var err error
		if name == ReportTopRoutes {
			report.Title = "Most subscribed routes"
			rows, err = s.repo.TopRoutes(ctx, topSubscribedLimit)
		} else {
			report.Title = "Most subscribed buses"
			rows, err = s.repo.TopBuses(ctx, topSubscribedLimit)
		}
		if err != nil {
			return nil, utils.WrapInternal(err)
		}
		report.Data = rows
		report.Headers = []string{"#", "Target", "Subscribers"}
		for i, r := range rows {
			report.Rows = append(report.Rows, []string{strconv.Itoa(i + 1), r.Label, itoa(r.Subscribers)})
		}

	case ReportNotificationVolume:
		since := utils.StartOfDay(s.now()).AddDate(0, 0, -(notificationVolumeDays - 1))
		rows, err := s.repo.NotificationVolume(ctx, since)
		if err != nil {
			return nil, utils.WrapInternal(err)
		}
		report.Title = fmt.Sprintf("Notification volume, last %d days", notificationVolumeDays)
		report.Data = rows
		report.Headers = []string{"Date", "All", "High", "Medium", "Low"}
		for _, r := range rows {
			report.Rows = append(report.Rows, []string{r.Date, itoa(r.All), itoa(r.High), itoa(r.Medium), itoa(r.Low)})
		}

	case ReportUserGrowth:
		now := s.now().UTC()
		since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(userGrowthMonths - 1), 0)
		rows, err := s.repo.UserGrowth(ctx, since)
		if err != nil {
			return nil, utils.WrapInternal(err)
		}
		report.Title = fmt.Sprintf("User growth, last %d months", userGrowthMonths)
		report.Data = rows
		report.Headers = []string{"Month", "New users", "Active users", "Total users"}
		for _, r := range rows {
			report.Rows = append(report.Rows, []string{r.Month, itoa(r.NewUsers), itoa(r.ActiveUsers), itoa(r.TotalUsers)})
		}

	default:
		return nil, utils.NewNotFoundError(msgReportNotFound)
	}

	return report, nil
}

// ExportReport renders the report as a PDF and returns it with a file name.
func (s *dashboardService) ExportReport(ctx context.Context, name string) ([]byte, string, error) {
	report, err := s.Report(ctx, name)
	if err != nil {
		return nil, "", err
	}

	pdf, err := export.RenderPDF(&export.Table{
		Title:       report.Title,
		Subtitle:    utils.AppName,
		Headers:     report.Headers,
		Rows:        report.Rows,
		GeneratedAt: report.GeneratedAt,
	})
	if err != nil {
		return nil, "", utils.WrapInternal(err)
	}

	filename := fmt.Sprintf("%s-%s.pdf", report.Name, report.GeneratedAt.Format("20060102"))
	return pdf, filename, nil
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
