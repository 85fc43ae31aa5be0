package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentStatus string

const (
	AssignmentStatusActive AssignmentStatus = "active"
	AssignmentStatusEnded  AssignmentStatus = "ended"
)

func (s AssignmentStatus) IsValid() bool {
	return s == AssignmentStatusActive || s == AssignmentStatusEnded
}

// BusAssignment ties a bus to a driver, an operator account, a route and a
// home terminal for one shift.
type BusAssignment struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BusID      primitive.ObjectID `json:"bus_id" bson:"bus_id"`
	DriverID   primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	OperatorID primitive.ObjectID `json:"operator_id" bson:"operator_id"`
	RouteID    primitive.ObjectID `json:"route_id" bson:"route_id"`
	TerminalID primitive.ObjectID `json:"terminal_id" bson:"terminal_id"`
	Status     AssignmentStatus   `json:"status" bson:"status"`
	StartedAt  time.Time          `json:"started_at" bson:"started_at"`
	EndedAt    *time.Time         `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
	IsDeleted  bool               `json:"is_deleted" bson:"is_deleted"`
	DeletedAt  *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
