package validators

import "strings"

type RouteCreateRequest struct {
	RouteCode   string  `json:"route_code" validate:"required,min=1,max=20"`
	RouteName   string  `json:"route_name" validate:"required,min=2,max=100"`
	Origin      string  `json:"origin" validate:"required,max=200"`
	Destination string  `json:"destination" validate:"required,max=200"`
	DistanceKM  float64 `json:"distance_km" validate:"min=0"`
	Status      string  `json:"status" validate:"omitempty,route_status"`
}

type RouteUpdateRequest struct {
	RouteCode   *string  `json:"route_code" validate:"omitempty,min=1,max=20"`
	RouteName   *string  `json:"route_name" validate:"omitempty,min=2,max=100"`
	Origin      *string  `json:"origin" validate:"omitempty,max=200"`
	Destination *string  `json:"destination" validate:"omitempty,max=200"`
	DistanceKM  *float64 `json:"distance_km" validate:"omitempty,min=0"`
	Status      *string  `json:"status" validate:"omitempty,route_status"`
}

func ValidateRouteCreate(req *RouteCreateRequest) error {
	req.RouteCode = strings.TrimSpace(req.RouteCode)
	req.RouteName = strings.TrimSpace(req.RouteName)
	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	return Validate(req)
}

func ValidateRouteUpdate(req *RouteUpdateRequest) error {
	trimPtr(req.RouteCode)
	trimPtr(req.RouteName)
	trimPtr(req.Origin)
	trimPtr(req.Destination)
	return Validate(req)
}

type RouteStopCreateRequest struct {
	RouteID   string   `json:"route_id" validate:"required,object_id"`
	StopName  string   `json:"stop_name" validate:"required,min=1,max=100"`
	StopOrder int      `json:"stop_order" validate:"required,min=1"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type RouteStopUpdateRequest struct {
	RouteID   *string  `json:"route_id" validate:"omitempty,object_id"`
	StopName  *string  `json:"stop_name" validate:"omitempty,min=1,max=100"`
	StopOrder *int     `json:"stop_order" validate:"omitempty,min=1"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

func ValidateRouteStopCreate(req *RouteStopCreateRequest) error {
	req.StopName = strings.TrimSpace(req.StopName)
	return Validate(req)
}

func ValidateRouteStopUpdate(req *RouteStopUpdateRequest) error {
	trimPtr(req.StopName)
	return Validate(req)
}

type TerminalCreateRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=100"`
	Address   string   `json:"address" validate:"required,max=300"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	Status    string   `json:"status" validate:"omitempty,terminal_status"`
}

type TerminalUpdateRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Address   *string  `json:"address" validate:"omitempty,max=300"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	Status    *string  `json:"status" validate:"omitempty,terminal_status"`
}

func ValidateTerminalCreate(req *TerminalCreateRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	return Validate(req)
}

func ValidateTerminalUpdate(req *TerminalUpdateRequest) error {
	trimPtr(req.Name)
	trimPtr(req.Address)
	return Validate(req)
}

type TerminalLogCreateRequest struct {
	TerminalID string `json:"terminal_id" validate:"required,object_id"`
	BusID      string `json:"bus_id" validate:"required,object_id"`
	EventType  string `json:"event_type" validate:"required,terminal_event"`
	Remarks    string `json:"remarks" validate:"max=500"`
}
