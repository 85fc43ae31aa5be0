package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusState is the operational state of a bus. It is distinct from BusStatus,
// which carries live occupancy data.
type BusState string

const (
	BusStateActive       BusState = "active"
	BusStateMaintenance  BusState = "maintenance"
	BusStateOutOfService BusState = "out of service"
)

func (s BusState) IsValid() bool {
	switch s {
	case BusStateActive, BusStateMaintenance, BusStateOutOfService:
		return true
	}
	return false
}

type Bus struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BusNumber   string             `json:"bus_number" bson:"bus_number"`
	PlateNumber string             `json:"plate_number" bson:"plate_number"`
	Capacity    int                `json:"capacity" bson:"capacity"`
	Status      BusState           `json:"status" bson:"status"`
	IsDeleted   bool               `json:"is_deleted" bson:"is_deleted"`
	DeletedAt   *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// BusOverview joins a bus with its live status and current assignment.
type BusOverview struct {
	Bus        `bson:",inline"`
	Occupancy  *BusStatus        `json:"occupancy,omitempty" bson:"occupancy,omitempty"`
	Assignment *AssignmentDetail `json:"assignment,omitempty" bson:"assignment,omitempty"`
}

type AssignmentDetail struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Status     AssignmentStatus   `json:"status" bson:"status"`
	DriverName string             `json:"driver_name" bson:"driver_name"`
	RouteCode  string             `json:"route_code" bson:"route_code"`
	RouteName  string             `json:"route_name" bson:"route_name"`
	StartedAt  time.Time          `json:"started_at" bson:"started_at"`
}
