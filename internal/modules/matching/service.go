// Matching service composes geocoding, the rider directory, live locations,
// and the routing matrix into a ranked candidate list.
package matching

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/kemsguy7/pick-n-get/internal/config"
	"github.com/kemsguy7/pick-n-get/internal/geo"
	"github.com/kemsguy7/pick-n-get/internal/modules/location"
	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
	"github.com/kemsguy7/pick-n-get/internal/observability"
	"github.com/kemsguy7/pick-n-get/internal/types"
)

// RiderSource is the slice of the rider directory the matcher needs.
type RiderSource interface {
	FindEligible(ctx context.Context, q rider.EligibleQuery) ([]rider.Rider, error)
}

// LocationSource reads a rider's live position; absence is not an error.
type LocationSource interface {
	Get(ctx context.Context, riderID int64) (location.Position, bool, error)
}

type Service struct {
	geocoder  geo.Geocoder
	riders    RiderSource
	locations LocationSource
	matrix    geo.MatrixRanker
	cfg       config.MatchingConfig
	logger    *zap.Logger
}

func NewService(
	geocoder geo.Geocoder,
	riders RiderSource,
	locations LocationSource,
	matrix geo.MatrixRanker,
	cfg config.MatchingConfig,
	logger *zap.Logger,
) *Service {
	if cfg.PoolLimit <= 0 {
		cfg.PoolLimit = 20
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 5
	}
	return &Service{geocoder: geocoder, riders: riders, locations: locations, matrix: matrix, cfg: cfg, logger: logger}
}

// FindCandidates ranks available riders for the request by travel duration.
// Geocoding failure surfaces as geo.ErrGeocode; every other external failure
// degrades to an empty list, which callers read as "no riders available".
func (s *Service) FindCandidates(ctx context.Context, req FindRequest) (FindResult, error) {
	observability.MatchRequestsTotal.Inc()

	vt := VehicleForWeight(req.ItemWeightKg)
	result := FindResult{VehicleType: vt, Candidates: []Candidate{}}

	origin, err := s.geocoder.Geocode(ctx, req.PickupAddress)
	if err != nil {
		return result, err
	}

	eligible, err := s.riders.FindEligible(ctx, rider.EligibleQuery{
		VehicleType: vt,
		Country:     req.Country,
		MinCapacity: req.ItemWeightKg,
		Limit:       s.cfg.PoolLimit,
	})
	if err != nil {
		return result, err
	}
	if len(eligible) == 0 {
		observability.MatchCandidates.Observe(0)
		return result, nil
	}

	// Riders with no live position are silently dropped; an unknown position
	// means ineligible, not failed.
	type located struct {
		rider rider.Rider
		point types.Point
	}
	pool := make([]located, 0, len(eligible))
	for _, r := range eligible {
		pos, ok, err := s.locations.Get(ctx, r.ID)
		if err != nil {
			s.logger.Warn("live-location read failed", zap.Int64("rider_id", r.ID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		pool = append(pool, located{rider: r, point: pos.Point})
	}
	if len(pool) == 0 {
		observability.MatchCandidates.Observe(0)
		return result, nil
	}

	dests := make([]types.Point, len(pool))
	for i, l := range pool {
		dests[i] = l.point
	}
	legs, err := s.matrix.Matrix(ctx, origin, dests)
	if err != nil {
		// Routing failure degrades to "no match"; the caller retries.
		s.logger.Warn("route matrix failed", zap.Error(err))
		observability.MatchCandidates.Observe(0)
		return result, nil
	}

	candidates := make([]Candidate, 0, len(pool))
	for i, l := range pool {
		if !legs[i].OK {
			continue
		}
		dur := legs[i].Duration.Seconds()
		candidates = append(candidates, Candidate{
			RiderID:         l.rider.ID,
			Name:            l.rider.Name,
			PhoneNumber:     l.rider.PhoneNumber,
			VehicleNumber:   l.rider.VehicleNumber,
			VehicleType:     l.rider.VehicleType,
			CapacityKg:      l.rider.CapacityKg,
			Lat:             l.point.Lat,
			Lng:             l.point.Lng,
			DistanceMeters:  legs[i].Meters,
			DurationSeconds: int(dur),
			ETA:             FormatETA(dur),
		})
	}

	// Duration, not distance: travel time through the road network is the
	// promise made to the customer.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DurationSeconds < candidates[j].DurationSeconds
	})
	if len(candidates) > s.cfg.MaxCandidates {
		candidates = candidates[:s.cfg.MaxCandidates]
	}

	result.Candidates = candidates
	observability.MatchCandidates.Observe(float64(len(candidates)))
	s.logger.Info("matched riders",
		zap.String("vehicle_type", string(vt)),
		zap.Int("eligible", len(eligible)),
		zap.Int("located", len(pool)),
		zap.Int("returned", len(candidates)),
	)
	return result, nil
}
