package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RouteStatus string

const (
	RouteStatusActive   RouteStatus = "active"
	RouteStatusInactive RouteStatus = "inactive"
)

func (s RouteStatus) IsValid() bool {
	return s == RouteStatusActive || s == RouteStatusInactive
}

type Route struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RouteCode   string             `json:"route_code" bson:"route_code"`
	RouteName   string             `json:"route_name" bson:"route_name"`
	Origin      string             `json:"origin" bson:"origin"`
	Destination string             `json:"destination" bson:"destination"`
	DistanceKM  float64            `json:"distance_km" bson:"distance_km"`
	Status      RouteStatus        `json:"status" bson:"status"`
	IsDeleted   bool               `json:"is_deleted" bson:"is_deleted"`
	DeletedAt   *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// RouteStop is hard-deleted; stop_order is the sort key within a route.
type RouteStop struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RouteID   primitive.ObjectID `json:"route_id" bson:"route_id"`
	StopName  string             `json:"stop_name" bson:"stop_name"`
	StopOrder int                `json:"stop_order" bson:"stop_order"`
	Latitude  *float64           `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64           `json:"longitude,omitempty" bson:"longitude,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
