package interfaces

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing filters. Zero values mean "no constraint".

type BusFilter struct {
	Status         string
	IncludeDeleted bool
}

type DriverFilter struct {
	Status         string
	IncludeDeleted bool
}

type RouteFilter struct {
	Status         string
	IncludeDeleted bool
}

type TerminalFilter struct {
	Status         string
	IncludeDeleted bool
}

type TerminalLogFilter struct {
	TerminalID *primitive.ObjectID
	BusID      *primitive.ObjectID
	EventType  string
}

type BusAssignmentFilter struct {
	Status   string
	BusID    *primitive.ObjectID
	DriverID *primitive.ObjectID
	RouteID  *primitive.ObjectID
	Since    *time.Time
}

type UserFilter struct {
	Role   string
	Status string
}

type NotificationFilter struct {
	Scope    string
	Priority string
	Type     string
}

type SystemLogFilter struct {
	UserID *primitive.ObjectID
	Action string
}
