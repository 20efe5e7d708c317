package geocode

import (
	"context"
	"errors"
)

var (
	// ErrUnresolved means the provider answered but found no match.
	ErrUnresolved = errors.New("location could not be resolved")
	// ErrUnavailable means the provider failed or timed out.
	ErrUnavailable = errors.New("geocoding provider unavailable")
)

type Result struct {
	Lon              float64 `json:"lon"`
	Lat              float64 `json:"lat"`
	FormattedAddress string  `json:"formattedAddress"`
}

type Geocoder interface {
	Resolve(ctx context.Context, cityText string) (Result, error)
}
