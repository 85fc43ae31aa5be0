package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TerminalStatus string

const (
	TerminalStatusActive   TerminalStatus = "active"
	TerminalStatusInactive TerminalStatus = "inactive"
)

func (s TerminalStatus) IsValid() bool {
	return s == TerminalStatusActive || s == TerminalStatusInactive
}

type Terminal struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Address   string             `json:"address" bson:"address"`
	Latitude  *float64           `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64           `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Status    TerminalStatus     `json:"status" bson:"status"`
	IsDeleted bool               `json:"is_deleted" bson:"is_deleted"`
	DeletedAt *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type TerminalEventType string

const (
	TerminalEventArrival   TerminalEventType = "arrival"
	TerminalEventDeparture TerminalEventType = "departure"
	TerminalEventDelay     TerminalEventType = "delay"
)

func (t TerminalEventType) IsValid() bool {
	switch t {
	case TerminalEventArrival, TerminalEventDeparture, TerminalEventDelay:
		return true
	}
	return false
}

type TerminalLog struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TerminalID primitive.ObjectID `json:"terminal_id" bson:"terminal_id"`
	BusID      primitive.ObjectID `json:"bus_id" bson:"bus_id"`
	EventType  TerminalEventType  `json:"event_type" bson:"event_type"`
	Remarks    string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
