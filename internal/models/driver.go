package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "active"
	DriverStatusInactive DriverStatus = "inactive"
)

func (s DriverStatus) IsValid() bool {
	return s == DriverStatusActive || s == DriverStatusInactive
}

type Driver struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName     string             `json:"f_name" bson:"f_name"`
	LastName      string             `json:"l_name" bson:"l_name"`
	LicenseNumber string             `json:"license_number" bson:"license_number"`
	ContactNumber string             `json:"contact_number" bson:"contact_number"`
	ProfileImage  string             `json:"profile_image" bson:"profile_image"`
	Status        DriverStatus       `json:"status" bson:"status"`
	IsDeleted     bool               `json:"is_deleted" bson:"is_deleted"`
	DeletedAt     *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

func (d *Driver) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}
