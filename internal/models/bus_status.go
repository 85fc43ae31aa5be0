package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OccupancyStatus string

const (
	OccupancyEmpty        OccupancyStatus = "empty"
	OccupancyFewSeats     OccupancyStatus = "few seats"
	OccupancyStandingRoom OccupancyStatus = "standing room"
	OccupancyFull         OccupancyStatus = "full"
)

func (s OccupancyStatus) IsValid() bool {
	switch s {
	case OccupancyEmpty, OccupancyFewSeats, OccupancyStandingRoom, OccupancyFull:
		return true
	}
	return false
}

// BusStatus is the live occupancy record of a bus; at most one per bus.
type BusStatus struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BusID           primitive.ObjectID `json:"bus_id" bson:"bus_id"`
	OccupancyCount  int                `json:"occupancy_count" bson:"occupancy_count"`
	OccupancyStatus OccupancyStatus    `json:"occupancy_status" bson:"occupancy_status"`
	DelayMinutes    int                `json:"delay_minutes" bson:"delay_minutes"`
	IsSkippingStops bool               `json:"is_skipping_stops" bson:"is_skipping_stops"`
	IsDeleted       bool               `json:"is_deleted" bson:"is_deleted"`
	DeletedAt       *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}
