// Package rider holds courier records and the directory queries over them.
package rider

import (
	"strings"
	"time"
)

// Status is the rider's operational availability.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusOnTrip    Status = "OnTrip"
	StatusOffLine   Status = "OffLine"
)

// ApprovalStatus is the admin gate; only Approved riders can be matched.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Reject"
)

type VehicleType string

const (
	VehicleBike  VehicleType = "Bike"
	VehicleCar   VehicleType = "Car"
	VehicleVan   VehicleType = "Van"
	VehicleTruck VehicleType = "Truck"
)

// ParseVehicleType accepts any casing of the four vehicle types.
func ParseVehicleType(v string) (VehicleType, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "bike":
		return VehicleBike, true
	case "car":
		return VehicleCar, true
	case "van":
		return VehicleVan, true
	case "truck":
		return VehicleTruck, true
	}
	return "", false
}

// ParseApprovalStatus accepts any casing of the three approval states.
func ParseApprovalStatus(v string) (ApprovalStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "pending":
		return ApprovalPending, true
	case "approved", "approve":
		return ApprovalApproved, true
	case "reject", "rejected":
		return ApprovalRejected, true
	}
	return "", false
}

// Rider is a courier. The numeric ID is assigned externally (the identity
// ledger) and is stable; wallet, phone, and vehicle number are unique.
type Rider struct {
	ID             int64
	Name           string
	PhoneNumber    string
	VehicleNumber  string
	HomeAddress    string
	WalletAddress  *string
	VehicleType    VehicleType
	CapacityKg     float64
	Country        string
	RiderStatus    Status
	ApprovalStatus ApprovalStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EligibleQuery narrows the directory to riders that can take a pickup.
// Vehicle type and country match case-insensitively.
type EligibleQuery struct {
	VehicleType VehicleType
	Country     string
	MinCapacity float64
	Limit       int
}
