// Package matching ranks available riders for a pickup request.
package matching

import (
	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
)

// Candidate is a rider annotated with travel estimates from the pickup point.
type Candidate struct {
	RiderID         int64              `json:"riderId"`
	Name            string             `json:"name"`
	PhoneNumber     string             `json:"phoneNumber"`
	VehicleNumber   string             `json:"vehicleNumber"`
	VehicleType     rider.VehicleType  `json:"vehicleType"`
	CapacityKg      float64            `json:"capacity"`
	Lat             float64            `json:"lat"`
	Lng             float64            `json:"lng"`
	DistanceMeters  int                `json:"distance"`
	DurationSeconds int                `json:"duration"`
	ETA             string             `json:"eta"`
}

// FindRequest describes the pickup to match riders against. VehicleType is
// derived from the item weight by the caller (VehicleForWeight).
type FindRequest struct {
	PickupAddress string
	Country       string
	ItemWeightKg  float64
}

// FindResult is the ranked candidate list. Empty Candidates means no riders
// are available; that is a normal outcome, not an error.
type FindResult struct {
	VehicleType rider.VehicleType
	Candidates  []Candidate
}
