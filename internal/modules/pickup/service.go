// Pickup service: validated creation with exclusive rider assignment, and the
// status transitions that drive a pickup to Delivered or Cancelled.
package pickup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
	"github.com/kemsguy7/pick-n-get/internal/observability"
	"github.com/kemsguy7/pick-n-get/internal/types"
)

// RiderDirectory is the slice of the rider module the lifecycle needs.
type RiderDirectory interface {
	Get(ctx context.Context, id int64) (*rider.Rider, error)
}

// EarningsEstimator prices an item when the caller sends no estimate.
type EarningsEstimator interface {
	Estimate(ctx context.Context, category string, weightKg float64) (types.Money, error)
}

type Service struct {
	store    *Store
	riders   RiderDirectory
	earnings EarningsEstimator
	events   EventPublisher
	logger   *zap.Logger
}

func NewService(store *Store, riders RiderDirectory, earnings EarningsEstimator, events EventPublisher, logger *zap.Logger) *Service {
	return &Service{store: store, riders: riders, earnings: earnings, events: events, logger: logger}
}

type CreateCommand struct {
	UserID            int64
	ItemID            int64
	RiderID           int64
	CustomerName      string
	CustomerPhone     string
	PickupAddress     string
	PickupPoint       *types.Point
	ItemCategory      string
	ItemWeightKg      float64
	ItemDescription   *string
	EstimatedEarnings *types.Money
}

func (c CreateCommand) validate() error {
	switch {
	case c.UserID <= 0:
		return fmt.Errorf("%w: userId is required", ErrBadRequest)
	case c.ItemID <= 0:
		return fmt.Errorf("%w: itemId is required", ErrBadRequest)
	case c.RiderID <= 0:
		return fmt.Errorf("%w: riderId is required", ErrBadRequest)
	case c.CustomerName == "":
		return fmt.Errorf("%w: customerName is required", ErrBadRequest)
	case c.CustomerPhone == "":
		return fmt.Errorf("%w: customerPhone is required", ErrBadRequest)
	case c.PickupAddress == "":
		return fmt.Errorf("%w: pickupAddress is required", ErrBadRequest)
	case c.ItemCategory == "":
		return fmt.Errorf("%w: itemCategory is required", ErrBadRequest)
	case c.ItemWeightKg <= 0:
		return fmt.Errorf("%w: itemWeight must be positive", ErrBadRequest)
	}
	if c.PickupPoint != nil && !c.PickupPoint.Valid() {
		return fmt.Errorf("%w: pickup coordinates out of range", ErrBadRequest)
	}
	return nil
}

// Create persists a Pending pickup and flips its rider to OnTrip as one
// atomic unit. Exactly one of two concurrent creates against the same rider
// succeeds; the other gets ErrRiderUnavailable.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Pickup, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	r, err := s.riders.Get(ctx, cmd.RiderID)
	if errors.Is(err, rider.ErrNotFound) {
		return nil, ErrRiderNotFound
	}
	if err != nil {
		return nil, err
	}
	if r.RiderStatus != rider.StatusAvailable || r.ApprovalStatus != rider.ApprovalApproved {
		return nil, ErrRiderUnavailable
	}
	if r.CapacityKg < cmd.ItemWeightKg {
		return nil, &CapacityError{CapacityKg: r.CapacityKg, WeightKg: cmd.ItemWeightKg}
	}

	if open, err := s.store.FindOpenByUserItem(ctx, cmd.UserID, cmd.ItemID); err == nil {
		return nil, &DuplicatePickupError{TrackingID: open.TrackingID, Status: open.Status}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	trackingID, err := s.freshTrackingID(ctx)
	if err != nil {
		return nil, err
	}

	est := types.Money{Currency: "USD"}
	if cmd.EstimatedEarnings != nil {
		est = *cmd.EstimatedEarnings
	} else if s.earnings != nil {
		if m, err := s.earnings.Estimate(ctx, cmd.ItemCategory, cmd.ItemWeightKg); err == nil {
			est = m
		} else {
			s.logger.Warn("earnings estimate failed", zap.String("category", cmd.ItemCategory), zap.Error(err))
		}
	}

	p := &Pickup{
		ID:                uuid.NewString(),
		TrackingID:        trackingID,
		RiderID:           cmd.RiderID,
		UserID:            cmd.UserID,
		ItemID:            cmd.ItemID,
		CustomerName:      cmd.CustomerName,
		CustomerPhone:     cmd.CustomerPhone,
		PickupAddress:     cmd.PickupAddress,
		PickupPoint:       cmd.PickupPoint,
		ItemCategory:      cmd.ItemCategory,
		ItemWeightKg:      cmd.ItemWeightKg,
		ItemDescription:   cmd.ItemDescription,
		EstimatedEarnings: est,
		Status:            StatusPending,
		RequestedAt:       time.Now(),
	}
	if err := s.store.CreateAssigned(ctx, p); err != nil {
		if errors.Is(err, ErrConflict) {
			// Lost the duplicate-check race; re-read to report the winner's
			// tracking code.
			if open, err2 := s.store.FindOpenByUserItem(ctx, cmd.UserID, cmd.ItemID); err2 == nil {
				return nil, &DuplicatePickupError{TrackingID: open.TrackingID, Status: open.Status}
			}
		}
		return nil, err
	}

	observability.PickupsCreatedTotal.Inc()
	s.publish(ctx, p, StatusNone, StatusPending)
	s.logger.Info("pickup created",
		zap.String("pickup_id", p.ID),
		zap.String("tracking_id", p.TrackingID),
		zap.Int64("rider_id", p.RiderID),
	)
	return p, nil
}

type TransitionCommand struct {
	PickupID string
	RiderID  int64
	To       Status
	Reason   *string
}

// Transition moves a pickup one step through the state machine on behalf of
// its assigned rider. Requesting the current status is rejected, not a no-op.
func (s *Service) Transition(ctx context.Context, cmd TransitionCommand) (*Pickup, error) {
	if cmd.PickupID == "" || cmd.RiderID <= 0 {
		return nil, ErrBadRequest
	}

	p, err := s.store.Get(ctx, cmd.PickupID)
	if err != nil {
		return nil, err
	}
	if p.RiderID != cmd.RiderID {
		return nil, ErrNotAssigned
	}
	if !CanTransition(p.Status, cmd.To) {
		return nil, &InvalidTransitionError{From: p.Status, To: cmd.To}
	}

	var reason *string
	if cmd.To == StatusCancelled {
		reason = cmd.Reason
	}
	ok, err := s.store.Transition(ctx, p.ID, cmd.RiderID, p.Status, cmd.To, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}

	observability.PickupTransitionsTotal.WithLabelValues(string(cmd.To)).Inc()
	updated, err := s.store.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, updated, p.Status, cmd.To)
	s.logger.Info("pickup transitioned",
		zap.String("pickup_id", p.ID),
		zap.String("from", string(p.Status)),
		zap.String("to", string(cmd.To)),
	)
	return updated, nil
}

// Cancel is a transition to Cancelled with an optional free-text reason.
func (s *Service) Cancel(ctx context.Context, pickupID string, riderID int64, reason *string) (*Pickup, error) {
	return s.Transition(ctx, TransitionCommand{
		PickupID: pickupID,
		RiderID:  riderID,
		To:       StatusCancelled,
		Reason:   reason,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*Pickup, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) freshTrackingID(ctx context.Context) (string, error) {
	// One regeneration on collision; a second collision in a one-in-a-million
	// space signals a deeper problem and surfaces as a failure.
	for i := 0; i < 2; i++ {
		id := newTrackingID()
		exists, err := s.store.TrackingIDExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", ErrTrackingCollision
}

func (s *Service) publish(ctx context.Context, p *Pickup, from, to Status) {
	if s.events == nil {
		return
	}
	err := s.events.PublishTransition(ctx, TransitionEvent{
		PickupID:   p.ID,
		TrackingID: p.TrackingID,
		RiderID:    p.RiderID,
		UserID:     p.UserID,
		FromStatus: from,
		ToStatus:   to,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("event publish failed", zap.String("pickup_id", p.ID), zap.Error(err))
	}
}
