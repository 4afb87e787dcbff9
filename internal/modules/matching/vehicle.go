package matching

import "github.com/kemsguy7/pick-n-get/internal/modules/rider"

// VehicleForWeight picks the vehicle class for an item weight in kg:
// under 5 a bike, under 50 a car, under 200 a van, anything heavier a truck.
func VehicleForWeight(weightKg float64) rider.VehicleType {
	switch {
	case weightKg < 5:
		return rider.VehicleBike
	case weightKg < 50:
		return rider.VehicleCar
	case weightKg < 200:
		return rider.VehicleVan
	default:
		return rider.VehicleTruck
	}
}
