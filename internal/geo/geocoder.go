// Package geo wraps the Google Maps API for geocoding and route ranking.
package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"github.com/kemsguy7/pick-n-get/internal/types"
)

// ErrGeocode covers both "address not found" and transport failures. Callers
// cannot distinguish slow from unreachable; both mean "cannot match".
var ErrGeocode = errors.New("geocoding failed")

// Geocoder resolves a free-text address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
}

// GoogleGeocoder backs Geocoder with the Google Geocoding API.
type GoogleGeocoder struct {
	client  *maps.Client
	timeout time.Duration
}

func NewGoogleGeocoder(client *maps.Client, timeout time.Duration) *GoogleGeocoder {
	return &GoogleGeocoder{client: client, timeout: timeout}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (types.Point, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, fmt.Errorf("%w: %v", ErrGeocode, err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("%w: no results for %q", ErrGeocode, address)
	}

	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
