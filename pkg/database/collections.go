package database

const (
	CollectionBuses             = "buses"
	CollectionDrivers           = "drivers"
	CollectionBusStatus         = "bus_status"
	CollectionBusAssignments    = "bus_assignments"
	CollectionRoutes            = "routes"
	CollectionRouteStops        = "route_stops"
	CollectionTerminals         = "terminals"
	CollectionTerminalLogs      = "terminal_logs"
	CollectionUsers             = "users"
	CollectionNotifications     = "notifications"
	CollectionUserNotifications = "user_notifications"
	CollectionUserSubscriptions = "user_subscriptions"
	CollectionSystemLogs        = "system_logs"
	CollectionMigrations        = "migrations"
)
