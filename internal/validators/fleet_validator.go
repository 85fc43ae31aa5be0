package validators

import (
	"strings"
)

type BusCreateRequest struct {
	BusNumber   string `json:"bus_number" validate:"required,min=1,max=20"`
	PlateNumber string `json:"plate_number" validate:"required,min=2,max=20"`
	Capacity    int    `json:"capacity" validate:"required,min=1,max=999"`
	Status      string `json:"status" validate:"omitempty,bus_state"`
}

// BusUpdateRequest is a partial update; nil fields are left unchanged.
type BusUpdateRequest struct {
	BusNumber   *string `json:"bus_number" validate:"omitempty,min=1,max=20"`
	PlateNumber *string `json:"plate_number" validate:"omitempty,min=2,max=20"`
	Capacity    *int    `json:"capacity" validate:"omitempty,min=1,max=999"`
	Status      *string `json:"status" validate:"omitempty,bus_state"`
}

func ValidateBusCreate(req *BusCreateRequest) error {
	req.BusNumber = strings.TrimSpace(req.BusNumber)
	req.PlateNumber = strings.TrimSpace(req.PlateNumber)
	return Validate(req)
}

func ValidateBusUpdate(req *BusUpdateRequest) error {
	trimPtr(req.BusNumber)
	trimPtr(req.PlateNumber)
	return Validate(req)
}

type DriverCreateRequest struct {
	FirstName     string `json:"f_name" validate:"required,min=1,max=50"`
	LastName      string `json:"l_name" validate:"required,min=1,max=50"`
	LicenseNumber string `json:"license_number" validate:"required,min=3,max=30"`
	ContactNumber string `json:"contact_number" validate:"required,phone_number"`
	Status        string `json:"status" validate:"omitempty,driver_status"`
}

type DriverUpdateRequest struct {
	FirstName     *string `json:"f_name" validate:"omitempty,min=1,max=50"`
	LastName      *string `json:"l_name" validate:"omitempty,min=1,max=50"`
	LicenseNumber *string `json:"license_number" validate:"omitempty,min=3,max=30"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,phone_number"`
	Status        *string `json:"status" validate:"omitempty,driver_status"`
}

func ValidateDriverCreate(req *DriverCreateRequest) error {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.LicenseNumber = strings.TrimSpace(req.LicenseNumber)
	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	return Validate(req)
}

func ValidateDriverUpdate(req *DriverUpdateRequest) error {
	trimPtr(req.FirstName)
	trimPtr(req.LastName)
	trimPtr(req.LicenseNumber)
	trimPtr(req.ContactNumber)
	return Validate(req)
}

type BusStatusCreateRequest struct {
	BusID           string `json:"bus_id" validate:"required,object_id"`
	OccupancyCount  int    `json:"occupancy_count" validate:"min=0,max=999"`
	OccupancyStatus string `json:"occupancy_status" validate:"omitempty,occupancy_status"`
	DelayMinutes    int    `json:"delay_minutes" validate:"min=0"`
	IsSkippingStops bool   `json:"is_skipping_stops"`
}

// BusStatusUpdateRequest carries the only fields a status update may touch.
type BusStatusUpdateRequest struct {
	OccupancyCount  *int    `json:"occupancy_count" validate:"omitempty,min=0,max=999"`
	OccupancyStatus *string `json:"occupancy_status" validate:"omitempty,occupancy_status"`
	DelayMinutes    *int    `json:"delay_minutes" validate:"omitempty,min=0"`
	IsSkippingStops *bool   `json:"is_skipping_stops"`
}

type BusAssignmentCreateRequest struct {
	BusID      string `json:"bus_id" validate:"required,object_id"`
	DriverID   string `json:"driver_id" validate:"required,object_id"`
	OperatorID string `json:"operator_id" validate:"required,object_id"`
	RouteID    string `json:"route_id" validate:"required,object_id"`
	TerminalID string `json:"terminal_id" validate:"required,object_id"`
}

type BusAssignmentUpdateRequest struct {
	DriverID   *string `json:"driver_id" validate:"omitempty,object_id"`
	OperatorID *string `json:"operator_id" validate:"omitempty,object_id"`
	RouteID    *string `json:"route_id" validate:"omitempty,object_id"`
	TerminalID *string `json:"terminal_id" validate:"omitempty,object_id"`
}
