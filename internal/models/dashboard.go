package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type DashboardOverview struct {
	Counts           OverviewCounts   `json:"counts"`
	LiveBuses        LiveBusCounts    `json:"live_buses"`
	TodayAssignments map[string]int64 `json:"today_assignments"`
	RecentHighAlerts []*Notification  `json:"recent_high_alerts"`
}

type OverviewCounts struct {
	ActiveBuses     int64 `json:"active_buses"`
	ActiveRoutes    int64 `json:"active_routes"`
	ActiveTerminals int64 `json:"active_terminals"`
	ActiveDrivers   int64 `json:"active_drivers"`
}

// LiveBusCounts groups non-deleted buses: on route (active assignment), idle
// (active but unassigned) and in maintenance or out of service.
type LiveBusCounts struct {
	OnRoute      int64 `json:"on_route"`
	Idle         int64 `json:"idle"`
	Maintenance  int64 `json:"maintenance"`
	OutOfService int64 `json:"out_of_service"`
}

type ActiveBusPerRoute struct {
	RouteID        primitive.ObjectID `json:"route_id" bson:"_id"`
	RouteCode      string             `json:"route_code" bson:"route_code"`
	RouteName      string             `json:"route_name" bson:"route_name"`
	ActiveBusCount int64              `json:"active_bus_count" bson:"active_bus_count"`
}

type RoutePerformance struct {
	RouteID           primitive.ObjectID `json:"route_id" bson:"_id"`
	RouteCode         string             `json:"route_code" bson:"route_code"`
	RouteName         string             `json:"route_name" bson:"route_name"`
	AvgDelayMinutes   float64            `json:"avg_delay_minutes" bson:"avg_delay_minutes"`
	SkippedStopsCount int64              `json:"skipped_stops_count" bson:"skipped_stops_count"`
}

type RouteOccupancy struct {
	RouteID        primitive.ObjectID `json:"route_id" bson:"_id"`
	RouteCode      string             `json:"route_code" bson:"route_code"`
	RouteName      string             `json:"route_name" bson:"route_name"`
	TotalOccupancy int64              `json:"total_occupancy" bson:"total_occupancy"`
}

type SubscriptionRank struct {
	TargetID    primitive.ObjectID `json:"target_id" bson:"_id"`
	Label       string             `json:"label" bson:"label"`
	Subscribers int64              `json:"subscribers" bson:"subscribers"`
}

type NotificationVolume struct {
	Date   string `json:"date" bson:"_id"`
	All    int64  `json:"all" bson:"all"`
	Low    int64  `json:"low" bson:"low"`
	Medium int64  `json:"medium" bson:"medium"`
	High   int64  `json:"high" bson:"high"`
}

type UserGrowth struct {
	Month       string `json:"month" bson:"_id"`
	NewUsers    int64  `json:"new_users" bson:"new_users"`
	ActiveUsers int64  `json:"active_users" bson:"active_users"`
	TotalUsers  int64  `json:"total_users" bson:"total_users"`
}
