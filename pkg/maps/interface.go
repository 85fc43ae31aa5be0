package maps

import (
	"context"
	"errors"
)

var ErrNoResults = errors.New("no geocoding results")

// Geocoder resolves terminal addresses and route endpoints.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Location, error)
	DrivingDistance(ctx context.Context, origin, destination string) (*Distance, error)
}

type Location struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
	PlaceID          string  `json:"place_id"`
}

type Distance struct {
	Meters   int     `json:"meters"`
	Km       float64 `json:"km"`
	Duration int     `json:"duration_seconds"`
}
