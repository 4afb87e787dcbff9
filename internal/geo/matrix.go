package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"github.com/kemsguy7/pick-n-get/internal/types"
)

// ErrMatrix reports a failed routing-matrix call, timeouts included.
var ErrMatrix = errors.New("route matrix failed")

// Leg is the travel estimate from the origin to one destination. OK is false
// when the API could not route that particular destination.
type Leg struct {
	Meters   int
	Duration time.Duration
	OK       bool
}

// MatrixRanker returns travel estimates from one origin to each destination,
// positionally aligned with the input. Implementations must issue a single
// batched call, not one call per destination.
type MatrixRanker interface {
	Matrix(ctx context.Context, origin types.Point, destinations []types.Point) ([]Leg, error)
}

// GoogleMatrix backs MatrixRanker with the Google Distance Matrix API.
type GoogleMatrix struct {
	client  *maps.Client
	timeout time.Duration
}

func NewGoogleMatrix(client *maps.Client, timeout time.Duration) *GoogleMatrix {
	return &GoogleMatrix{client: client, timeout: timeout}
}

func (m *GoogleMatrix) Matrix(ctx context.Context, origin types.Point, destinations []types.Point) ([]Leg, error) {
	if len(destinations) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	dests := make([]string, len(destinations))
	for i, d := range destinations {
		dests[i] = formatPoint(d)
	}
	resp, err := m.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{formatPoint(origin)},
		Destinations: dests,
		Mode:         maps.TravelModeDriving,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatrix, err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) != len(destinations) {
		return nil, fmt.Errorf("%w: malformed response", ErrMatrix)
	}

	legs := make([]Leg, len(destinations))
	for i, el := range resp.Rows[0].Elements {
		if el.Status != "OK" {
			continue
		}
		legs[i] = Leg{Meters: el.Distance.Meters, Duration: el.Duration, OK: true}
	}
	return legs, nil
}

func formatPoint(p types.Point) string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}
