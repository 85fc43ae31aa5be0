package mongodb

import (
	"context"
	"fmt"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type dashboardRepository struct {
	db *mongo.Database
}

func NewDashboardRepository(db *mongo.Database) interfaces.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) coll(name string) *mongo.Collection {
	return r.db.Collection(name)
}

func (r *dashboardRepository) OverviewCounts(ctx context.Context) (*models.OverviewCounts, error) {
	active := func() bson.M { return bson.M{"is_deleted": false, "status": "active"} }

	counts := &models.OverviewCounts{}
	targets := []struct {
		collection string
		dest       *int64
	}{
		{database.CollectionBuses, &counts.ActiveBuses},
		{database.CollectionRoutes, &counts.ActiveRoutes},
		{database.CollectionTerminals, &counts.ActiveTerminals},
		{database.CollectionDrivers, &counts.ActiveDrivers},
	}
	for _, t := range targets {
		n, err := r.coll(t.collection).CountDocuments(ctx, active())
		if err != nil {
			return nil, translateError(err, "count "+t.collection)
		}
		*t.dest = n
	}
	return counts, nil
}

// LiveBusCounts splits non-deleted buses into on route, idle, maintenance
// and out of service. An active bus is on route when it has an active
// assignment.
func (r *dashboardRepository) LiveBusCounts(ctx context.Context) (*models.LiveBusCounts, error) {
	isActive := bson.M{"$eq": bson.A{"$status", models.BusStateActive}}
	assigned := bson.M{"$gt": bson.A{bson.M{"$size": "$assignments"}, 0}}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_deleted": false}}},
		{{Key: "$lookup", Value: bson.M{
			"from": database.CollectionBusAssignments,
			"let":  bson.M{"busId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr":      bson.M{"$eq": bson.A{"$bus_id", "$$busId"}},
					"status":     models.AssignmentStatusActive,
					"is_deleted": false,
				}},
				bson.M{"$limit": 1},
			},
			"as": "assignments",
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"on_route":       sumIf(bson.M{"$and": bson.A{isActive, assigned}}),
			"idle":           sumIf(bson.M{"$and": bson.A{isActive, bson.M{"$not": bson.A{assigned}}}}),
			"maintenance":    sumIf(bson.M{"$eq": bson.A{"$status", models.BusStateMaintenance}}),
			"out_of_service": sumIf(bson.M{"$eq": bson.A{"$status", models.BusStateOutOfService}}),
		}}},
	}

	type row struct {
		OnRoute      int64 `bson:"on_route"`
		Idle         int64 `bson:"idle"`
		Maintenance  int64 `bson:"maintenance"`
		OutOfService int64 `bson:"out_of_service"`
	}
	rows, err := aggregate[row](ctx, r.coll(database.CollectionBuses), pipeline, "count live buses")
	if err != nil {
		return nil, err
	}

	counts := &models.LiveBusCounts{}
	if len(rows) > 0 {
		counts.OnRoute = rows[0].OnRoute
		counts.Idle = rows[0].Idle
		counts.Maintenance = rows[0].Maintenance
		counts.OutOfService = rows[0].OutOfService
	}
	return counts, nil
}

func (r *dashboardRepository) AssignmentsByStatus(ctx context.Context, since time.Time) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_deleted": false, "started_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	type row struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	rows, err := aggregate[row](ctx, r.coll(database.CollectionBusAssignments), pipeline, "count assignments")
	if err != nil {
		return nil, err
	}

	result := map[string]int64{
		string(models.AssignmentStatusActive): 0,
		string(models.AssignmentStatusEnded):  0,
	}
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result, nil
}

func (r *dashboardRepository) RecentNotifications(ctx context.Context, priority models.NotificationPriority, limit int64) ([]*models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return findAll[models.Notification](ctx, r.coll(database.CollectionNotifications), bson.M{"priority": priority}, "list recent notifications", opts)
}

func (r *dashboardRepository) ActiveBusesPerRoute(ctx context.Context) ([]*models.ActiveBusPerRoute, error) {
	pipeline := mongo.Pipeline{
		activeAssignments(),
		{{Key: "$group", Value: bson.M{"_id": "$route_id", "buses": bson.M{"$addToSet": "$bus_id"}}}},
		lookupRoute(),
		{{Key: "$project", Value: bson.M{
			"route_code":       firstOr("$route.route_code", ""),
			"route_name":       firstOr("$route.route_name", ""),
			"active_bus_count": bson.M{"$size": "$buses"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "active_bus_count", Value: -1}, {Key: "route_code", Value: 1}}}},
	}
	return aggregate[models.ActiveBusPerRoute](ctx, r.coll(database.CollectionBusAssignments), pipeline, "report active buses per route")
}

func (r *dashboardRepository) RoutePerformance(ctx context.Context) ([]*models.RoutePerformance, error) {
	pipeline := append(assignmentsWithStatus(),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":                 "$route_id",
			"avg_delay_minutes":   bson.M{"$avg": "$live.delay_minutes"},
			"skipped_stops_count": sumIf("$live.is_skipping_stops"),
		}}},
		lookupRoute(),
		bson.D{{Key: "$project", Value: bson.M{
			"route_code":          firstOr("$route.route_code", ""),
			"route_name":          firstOr("$route.route_name", ""),
			"avg_delay_minutes":   bson.M{"$round": bson.A{bson.M{"$ifNull": bson.A{"$avg_delay_minutes", 0}}, 2}},
			"skipped_stops_count": 1,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "avg_delay_minutes", Value: -1}}}},
	)
	return aggregate[models.RoutePerformance](ctx, r.coll(database.CollectionBusAssignments), pipeline, "report route performance")
}

func (r *dashboardRepository) OccupancyPerRoute(ctx context.Context) ([]*models.RouteOccupancy, error) {
	pipeline := append(assignmentsWithStatus(),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":             "$route_id",
			"total_occupancy": bson.M{"$sum": "$live.occupancy_count"},
		}}},
		lookupRoute(),
		bson.D{{Key: "$project", Value: bson.M{
			"route_code":      firstOr("$route.route_code", ""),
			"route_name":      firstOr("$route.route_name", ""),
			"total_occupancy": 1,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "total_occupancy", Value: -1}}}},
	)
	return aggregate[models.RouteOccupancy](ctx, r.coll(database.CollectionBusAssignments), pipeline, "report occupancy per route")
}

func (r *dashboardRepository) TopRoutes(ctx context.Context, limit int64) ([]*models.SubscriptionRank, error) {
	return r.topSubscribed(ctx, "route_id", database.CollectionRoutes, "$target.route_name", limit)
}

func (r *dashboardRepository) TopBuses(ctx context.Context, limit int64) ([]*models.SubscriptionRank, error) {
	return r.topSubscribed(ctx, "bus_id", database.CollectionBuses, "$target.bus_number", limit)
}

func (r *dashboardRepository) topSubscribed(ctx context.Context, field, from, labelPath string, limit int64) ([]*models.SubscriptionRank, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{field: bson.M{"$exists": true, "$ne": nil}}}},
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "subscribers": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "subscribers", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{"from": from, "localField": "_id", "foreignField": "_id", "as": "target"}}},
		{{Key: "$project", Value: bson.M{"subscribers": 1, "label": firstOr(labelPath, "")}}},
	}
	return aggregate[models.SubscriptionRank](ctx, r.coll(database.CollectionUserSubscriptions), pipeline, fmt.Sprintf("report top %s", from))
}

func (r *dashboardRepository) NotificationVolume(ctx context.Context, since time.Time) ([]*models.NotificationVolume, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"all":    bson.M{"$sum": 1},
			"low":    sumIf(bson.M{"$eq": bson.A{"$priority", models.PriorityLow}}),
			"medium": sumIf(bson.M{"$eq": bson.A{"$priority", models.PriorityMedium}}),
			"high":   sumIf(bson.M{"$eq": bson.A{"$priority", models.PriorityHigh}}),
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	return aggregate[models.NotificationVolume](ctx, r.coll(database.CollectionNotifications), pipeline, "report notification volume")
}

// UserGrowth groups sign-ups by month. TotalUsers is the running total,
// seeded with the users created before since.
func (r *dashboardRepository) UserGrowth(ctx context.Context, since time.Time) ([]*models.UserGrowth, error) {
	users := r.coll(database.CollectionUsers)

	base, err := users.CountDocuments(ctx, bson.M{"is_deleted": false, "created_at": bson.M{"$lt": since}})
	if err != nil {
		return nil, translateError(err, "count users")
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_deleted": false, "created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$created_at"}},
			"new_users":    bson.M{"$sum": 1},
			"active_users": sumIf(bson.M{"$eq": bson.A{"$status", models.UserStatusActive}}),
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	rows, err := aggregate[models.UserGrowth](ctx, users, pipeline, "report user growth")
	if err != nil {
		return nil, err
	}

	running := base
	for _, row := range rows {
		running += row.NewUsers
		row.TotalUsers = running
	}
	return rows, nil
}

func sumIf(cond interface{}) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{cond, 1, 0}}}
}

func activeAssignments() bson.D {
	return bson.D{{Key: "$match", Value: bson.M{
		"status":     models.AssignmentStatusActive,
		"is_deleted": false,
	}}}
}

// assignmentsWithStatus pairs each active assignment with the live status
// of its bus as "live". Assignments whose bus has no status are dropped.
func assignmentsWithStatus() mongo.Pipeline {
	return mongo.Pipeline{
		activeAssignments(),
		{{Key: "$lookup", Value: bson.M{
			"from": database.CollectionBusStatus,
			"let":  bson.M{"busId": "$bus_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr":      bson.M{"$eq": bson.A{"$bus_id", "$$busId"}},
					"is_deleted": false,
				}},
				bson.M{"$limit": 1},
			},
			"as": "live",
		}}},
		{{Key: "$unwind", Value: "$live"}},
	}
}

func lookupRoute() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         database.CollectionRoutes,
		"localField":   "_id",
		"foreignField": "_id",
		"as":           "route",
	}}}
}
