package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kemsguy7/pick-n-get/internal/config"
	"github.com/kemsguy7/pick-n-get/internal/geo"
	"github.com/kemsguy7/pick-n-get/internal/modules/location"
	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
	"github.com/kemsguy7/pick-n-get/internal/types"
)

type fakeGeocoder struct {
	point types.Point
	err   error
}

func (f *fakeGeocoder) Geocode(context.Context, string) (types.Point, error) {
	return f.point, f.err
}

type fakeRiders struct {
	riders []rider.Rider
	err    error
	gotQ   rider.EligibleQuery
}

func (f *fakeRiders) FindEligible(_ context.Context, q rider.EligibleQuery) ([]rider.Rider, error) {
	f.gotQ = q
	return f.riders, f.err
}

type fakeLocations struct {
	positions map[int64]types.Point
}

func (f *fakeLocations) Get(_ context.Context, riderID int64) (location.Position, bool, error) {
	p, ok := f.positions[riderID]
	if !ok {
		return location.Position{}, false, nil
	}
	return location.Position{Point: p, Timestamp: time.Now()}, true, nil
}

type fakeMatrix struct {
	legs []geo.Leg
	err  error
}

func (f *fakeMatrix) Matrix(_ context.Context, _ types.Point, dests []types.Point) ([]geo.Leg, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.legs) != len(dests) {
		return nil, fmt.Errorf("leg count %d != destination count %d", len(f.legs), len(dests))
	}
	return f.legs, nil
}

func testRider(id int64) rider.Rider {
	return rider.Rider{
		ID:             id,
		Name:           fmt.Sprintf("Rider %d", id),
		PhoneNumber:    fmt.Sprintf("+1555%07d", id),
		VehicleNumber:  fmt.Sprintf("VH-%d", id),
		VehicleType:    rider.VehicleCar,
		CapacityKg:     60,
		Country:        "Nigeria",
		RiderStatus:    rider.StatusAvailable,
		ApprovalStatus: rider.ApprovalApproved,
	}
}

func newTestService(g geo.Geocoder, r RiderSource, l LocationSource, m geo.MatrixRanker) *Service {
	return NewService(g, r, l, m, config.MatchingConfig{PoolLimit: 20, MaxCandidates: 5}, zap.NewNop())
}

func TestFindCandidatesSortsByDuration(t *testing.T) {
	riders := &fakeRiders{riders: []rider.Rider{testRider(1), testRider(2), testRider(3)}}
	locations := &fakeLocations{positions: map[int64]types.Point{
		1: {Lat: 6.5, Lng: 3.3},
		2: {Lat: 6.6, Lng: 3.4},
		3: {Lat: 6.7, Lng: 3.5},
	}}
	// Rider 1 is the closest by distance but not the fastest; ordering must
	// follow duration.
	matrix := &fakeMatrix{legs: []geo.Leg{
		{Meters: 1000, Duration: 300 * time.Second, OK: true},
		{Meters: 4000, Duration: 120 * time.Second, OK: true},
		{Meters: 2000, Duration: 600 * time.Second, OK: true},
	}}
	svc := newTestService(&fakeGeocoder{point: types.Point{Lat: 6.45, Lng: 3.39}}, riders, locations, matrix)

	res, err := svc.FindCandidates(context.Background(), FindRequest{
		PickupAddress: "12 Marina Rd, Lagos",
		Country:       "Nigeria",
		ItemWeightKg:  10,
	})
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if res.VehicleType != rider.VehicleCar {
		t.Fatalf("vehicle type = %s, want Car", res.VehicleType)
	}
	wantOrder := []int64{2, 1, 3}
	if len(res.Candidates) != len(wantOrder) {
		t.Fatalf("got %d candidates, want %d", len(res.Candidates), len(wantOrder))
	}
	for i, want := range wantOrder {
		if res.Candidates[i].RiderID != want {
			t.Errorf("candidate[%d] = rider %d, want %d", i, res.Candidates[i].RiderID, want)
		}
	}
	for i := 1; i < len(res.Candidates); i++ {
		if res.Candidates[i].DurationSeconds < res.Candidates[i-1].DurationSeconds {
			t.Fatalf("durations not non-decreasing at %d", i)
		}
	}
	if res.Candidates[0].ETA != "2 mins" {
		t.Errorf("fastest ETA = %q, want %q", res.Candidates[0].ETA, "2 mins")
	}
	if riders.gotQ.MinCapacity != 10 || riders.gotQ.VehicleType != rider.VehicleCar {
		t.Errorf("eligibility query not derived from request: %+v", riders.gotQ)
	}
}

func TestFindCandidatesTruncatesToTopFive(t *testing.T) {
	var rs []rider.Rider
	positions := map[int64]types.Point{}
	var legs []geo.Leg
	for i := int64(1); i <= 8; i++ {
		rs = append(rs, testRider(i))
		positions[i] = types.Point{Lat: 6.5, Lng: 3.3}
		legs = append(legs, geo.Leg{Meters: int(i * 100), Duration: time.Duration(i) * time.Minute, OK: true})
	}
	svc := newTestService(
		&fakeGeocoder{point: types.Point{Lat: 6.45, Lng: 3.39}},
		&fakeRiders{riders: rs},
		&fakeLocations{positions: positions},
		&fakeMatrix{legs: legs},
	)

	res, err := svc.FindCandidates(context.Background(), FindRequest{PickupAddress: "a", Country: "Nigeria", ItemWeightKg: 10})
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(res.Candidates) != 5 {
		t.Fatalf("got %d candidates, want 5", len(res.Candidates))
	}
}

func TestFindCandidatesDropsRidersWithoutLivePosition(t *testing.T) {
	riders := &fakeRiders{riders: []rider.Rider{testRider(1), testRider(2)}}
	locations := &fakeLocations{positions: map[int64]types.Point{
		2: {Lat: 6.6, Lng: 3.4},
	}}
	matrix := &fakeMatrix{legs: []geo.Leg{{Meters: 500, Duration: 90 * time.Second, OK: true}}}
	svc := newTestService(&fakeGeocoder{point: types.Point{Lat: 6.45, Lng: 3.39}}, riders, locations, matrix)

	res, err := svc.FindCandidates(context.Background(), FindRequest{PickupAddress: "a", Country: "Nigeria", ItemWeightKg: 10})
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].RiderID != 2 {
		t.Fatalf("expected only rider 2, got %+v", res.Candidates)
	}
}

func TestFindCandidatesSkipsFailedMatrixElements(t *testing.T) {
	riders := &fakeRiders{riders: []rider.Rider{testRider(1), testRider(2)}}
	locations := &fakeLocations{positions: map[int64]types.Point{
		1: {Lat: 6.5, Lng: 3.3},
		2: {Lat: 6.6, Lng: 3.4},
	}}
	matrix := &fakeMatrix{legs: []geo.Leg{
		{OK: false},
		{Meters: 500, Duration: 90 * time.Second, OK: true},
	}}
	svc := newTestService(&fakeGeocoder{point: types.Point{Lat: 6.45, Lng: 3.39}}, riders, locations, matrix)

	res, err := svc.FindCandidates(context.Background(), FindRequest{PickupAddress: "a", Country: "Nigeria", ItemWeightKg: 10})
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].RiderID != 2 {
		t.Fatalf("expected only rider 2, got %+v", res.Candidates)
	}
}

func TestFindCandidatesMatrixFailureDegradesToEmpty(t *testing.T) {
	riders := &fakeRiders{riders: []rider.Rider{testRider(1)}}
	locations := &fakeLocations{positions: map[int64]types.Point{1: {Lat: 6.5, Lng: 3.3}}}
	matrix := &fakeMatrix{err: geo.ErrMatrix}
	svc := newTestService(&fakeGeocoder{point: types.Point{Lat: 6.45, Lng: 3.39}}, riders, locations, matrix)

	res, err := svc.FindCandidates(context.Background(), FindRequest{PickupAddress: "a", Country: "Nigeria", ItemWeightKg: 10})
	if err != nil {
		t.Fatalf("matrix failure must not surface: %v", err)
	}
	if len(res.Candidates) != 0 {
		t.Fatalf("expected empty list, got %d", len(res.Candidates))
	}
}

func TestFindCandidatesGeocodeFailure(t *testing.T) {
	svc := newTestService(
		&fakeGeocoder{err: fmt.Errorf("%w: zero results", geo.ErrGeocode)},
		&fakeRiders{},
		&fakeLocations{},
		&fakeMatrix{},
	)
	_, err := svc.FindCandidates(context.Background(), FindRequest{PickupAddress: "nowhere", Country: "Nigeria", ItemWeightKg: 10})
	if !errors.Is(err, geo.ErrGeocode) {
		t.Fatalf("expected geocode error to pass through, got %v", err)
	}
}

func TestFindCandidatesNoEligibleRiders(t *testing.T) {
	svc := newTestService(
		&fakeGeocoder{point: types.Point{Lat: 6.45, Lng: 3.39}},
		&fakeRiders{},
		&fakeLocations{},
		&fakeMatrix{},
	)
	res, err := svc.FindCandidates(context.Background(), FindRequest{PickupAddress: "a", Country: "Nigeria", ItemWeightKg: 10})
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(res.Candidates) != 0 {
		t.Fatalf("expected empty list, got %d", len(res.Candidates))
	}
}
