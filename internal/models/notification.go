package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string
type NotificationPriority string
type NotificationScope string

const (
	NotificationTypeDelay       NotificationType = "delay"
	NotificationTypeFull        NotificationType = "full"
	NotificationTypeSkippedStop NotificationType = "skipped_stop"
	NotificationTypeInfo        NotificationType = "info"

	PriorityHigh   NotificationPriority = "high"
	PriorityMedium NotificationPriority = "medium"
	PriorityLow    NotificationPriority = "low"

	ScopeBus      NotificationScope = "bus"
	ScopeRoute    NotificationScope = "route"
	ScopeTerminal NotificationScope = "terminal"
	ScopeSystem   NotificationScope = "system"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeDelay, NotificationTypeFull, NotificationTypeSkippedStop, NotificationTypeInfo:
		return true
	}
	return false
}

func (p NotificationPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (s NotificationScope) IsValid() bool {
	switch s {
	case ScopeBus, ScopeRoute, ScopeTerminal, ScopeSystem:
		return true
	}
	return false
}

type Notification struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	SenderID       primitive.ObjectID   `json:"sender_id" bson:"sender_id"`
	BusID          *primitive.ObjectID  `json:"bus_id,omitempty" bson:"bus_id,omitempty"`
	RouteID        *primitive.ObjectID  `json:"route_id,omitempty" bson:"route_id,omitempty"`
	TerminalID     *primitive.ObjectID  `json:"terminal_id,omitempty" bson:"terminal_id,omitempty"`
	Title          string               `json:"title" bson:"title"`
	Message        string               `json:"message" bson:"message"`
	Type           NotificationType     `json:"notification_type" bson:"notification_type"`
	Priority       NotificationPriority `json:"priority" bson:"priority"`
	Scope          NotificationScope    `json:"scope" bson:"scope"`
	RecipientCount int                  `json:"recipient_count" bson:"recipient_count"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
}

// UserNotification is one inbox row per recipient.
type UserNotification struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         primitive.ObjectID `json:"user_id" bson:"user_id"`
	NotificationID primitive.ObjectID `json:"notification_id" bson:"notification_id"`
	IsRead         bool               `json:"is_read" bson:"is_read"`
	ReadAt         *time.Time         `json:"read_at,omitempty" bson:"read_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	Notification   *Notification      `json:"notification,omitempty" bson:"notification,omitempty"`
}

// UserSubscription targets exactly one of RouteID or BusID.
type UserSubscription struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `json:"user_id" bson:"user_id"`
	RouteID   *primitive.ObjectID `json:"route_id,omitempty" bson:"route_id,omitempty"`
	BusID     *primitive.ObjectID `json:"bus_id,omitempty" bson:"bus_id,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}
