package matching

import (
	"testing"

	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
)

func TestVehicleForWeight(t *testing.T) {
	cases := []struct {
		weight float64
		want   rider.VehicleType
	}{
		{0.5, rider.VehicleBike},
		{4.9, rider.VehicleBike},
		{5, rider.VehicleCar},
		{49.9, rider.VehicleCar},
		{50, rider.VehicleVan},
		{199.9, rider.VehicleVan},
		{200, rider.VehicleTruck},
		{1500, rider.VehicleTruck},
	}
	for _, tc := range cases {
		if got := VehicleForWeight(tc.weight); got != tc.want {
			t.Errorf("VehicleForWeight(%v) = %s, want %s", tc.weight, got, tc.want)
		}
	}
}
