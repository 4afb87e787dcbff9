// Package pickup holds the pickup aggregate, its status state machine, and
// the transactional assignment core.
package pickup

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kemsguy7/pick-n-get/internal/types"
)

type Status string

const (
	StatusNone      Status = "None"
	StatusPending   Status = "Pending"
	StatusInTransit Status = "InTransit"
	StatusPickedUp  Status = "PickedUp"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus accepts any casing of the five pickup states.
func ParseStatus(v string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "pending":
		return StatusPending, true
	case "intransit", "in-transit", "in_transit":
		return StatusInTransit, true
	case "pickedup", "picked-up", "picked_up":
		return StatusPickedUp, true
	case "delivered":
		return StatusDelivered, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	}
	return "", false
}

// AllowedTransitions represents the pickup state flow as code. Delivered and
// Cancelled are terminal; a transition to the current status is rejected, not
// a no-op.
var AllowedTransitions = map[Status][]Status{
	StatusPending:   {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusPickedUp, StatusCancelled},
	StatusPickedUp:  {StatusDelivered},
}

func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Pickup is one collection job, bound to exactly one rider at creation.
type Pickup struct {
	ID                string       `json:"pickupId"`
	TrackingID        string       `json:"trackingId"`
	RiderID           int64        `json:"riderId"`
	UserID            int64        `json:"userId"`
	ItemID            int64        `json:"itemId"`
	CustomerName      string       `json:"customerName"`
	CustomerPhone     string       `json:"customerPhone"`
	PickupAddress     string       `json:"pickupAddress"`
	PickupPoint       *types.Point `json:"pickupCoordinates,omitempty"`
	ItemCategory      string       `json:"itemCategory"`
	ItemWeightKg      float64      `json:"itemWeight"`
	ItemDescription   *string      `json:"itemDescription,omitempty"`
	EstimatedEarnings types.Money  `json:"estimatedEarnings"`
	Status            Status       `json:"status"`
	RequestedAt       time.Time    `json:"requestedAt"`
	AcceptedAt        *time.Time   `json:"acceptedAt,omitempty"`
	CollectedAt       *time.Time   `json:"collectedAt,omitempty"`
	DeliveredAt       *time.Time   `json:"deliveredAt,omitempty"`
	CancelReason      *string      `json:"cancelReason,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

type Event struct {
	ID         int64
	PickupID   string
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *int64
	CreatedAt  time.Time
}

var (
	ErrNotFound          = errors.New("pickup not found")
	ErrRiderNotFound     = errors.New("rider not found")
	ErrRiderUnavailable  = errors.New("rider is not available")
	ErrNotAssigned       = errors.New("pickup is not assigned to this rider")
	ErrBadRequest        = errors.New("bad request")
	ErrConflict          = errors.New("pickup state conflict")
	ErrTrackingCollision = errors.New("tracking id generation collided twice")
)

// DuplicatePickupError reports an existing open pickup for the same
// (user, item) pair, with its tracking id so the caller can resume it.
type DuplicatePickupError struct {
	TrackingID string
	Status     Status
}

func (e *DuplicatePickupError) Error() string {
	return fmt.Sprintf("pickup already open for this item: %s (%s)", e.TrackingID, e.Status)
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition pickup from %s to %s", e.From, e.To)
}

// CapacityError reports an item too heavy for the chosen rider's vehicle.
type CapacityError struct {
	CapacityKg float64
	WeightKg   float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("item weight %.1fkg exceeds rider capacity %.1fkg", e.WeightKg, e.CapacityKg)
}

const trackingDigits = "0123456789"

// newTrackingID returns a human-readable code like REC483920.
func newTrackingID() string {
	var b [6]byte
	_, _ = rand.Read(b[:])
	for i := range b {
		b[i] = trackingDigits[int(b[i])%len(trackingDigits)]
	}
	return "REC" + string(b[:])
}
