package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SystemLog struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID      *primitive.ObjectID `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Action      string              `json:"action" bson:"action"`
	Description string              `json:"description" bson:"description"`
	EntityType  string              `json:"entity_type,omitempty" bson:"entity_type,omitempty"`
	EntityID    *primitive.ObjectID `json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
}
