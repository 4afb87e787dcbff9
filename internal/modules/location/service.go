// Location service: validated updates and the stale-entry sweep.
package location

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kemsguy7/pick-n-get/internal/observability"
	"github.com/kemsguy7/pick-n-get/internal/types"
)

type Service struct {
	store      Store
	staleAfter time.Duration
	logger     *zap.Logger
}

func NewService(store Store, staleAfter time.Duration, logger *zap.Logger) *Service {
	return &Service{store: store, staleAfter: staleAfter, logger: logger}
}

type Update struct {
	RiderID int64
	Point   types.Point
	Heading float64
}

// Report stores a rider's position. The timestamp is always the server's
// clock, never the client's.
func (s *Service) Report(ctx context.Context, u Update) error {
	if !u.Point.Valid() {
		return ErrInvalidCoordinate
	}
	return s.store.Set(ctx, u.RiderID, Position{
		Point:     u.Point,
		Heading:   u.Heading,
		Timestamp: time.Now(),
	})
}

func (s *Service) Get(ctx context.Context, riderID int64) (Position, bool, error) {
	return s.store.Get(ctx, riderID)
}

// Remove clears a rider's position when they go offline.
func (s *Service) Remove(ctx context.Context, riderID int64) error {
	return s.store.Remove(ctx, riderID)
}

// SweepStale is run on a schedule; a rider whose position ages out simply
// stops appearing in match results.
func (s *Service) SweepStale(ctx context.Context) {
	removed, err := s.store.SweepStale(ctx, time.Now().Add(-s.staleAfter))
	if err != nil {
		s.logger.Warn("live-location sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		observability.LocationSweepRemovals.Add(float64(removed))
		s.logger.Info("swept stale live locations", zap.Int("removed", removed))
	}
}
