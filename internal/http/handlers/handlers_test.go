package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kemsguy7/pick-n-get/internal/config"
	"github.com/kemsguy7/pick-n-get/internal/geo"
	"github.com/kemsguy7/pick-n-get/internal/modules/location"
	"github.com/kemsguy7/pick-n-get/internal/modules/matching"
	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
	"github.com/kemsguy7/pick-n-get/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGeocoder struct {
	point types.Point
	err   error
}

func (s *stubGeocoder) Geocode(context.Context, string) (types.Point, error) {
	return s.point, s.err
}

type stubRiders struct{ riders []rider.Rider }

func (s *stubRiders) FindEligible(context.Context, rider.EligibleQuery) ([]rider.Rider, error) {
	return s.riders, nil
}

type stubLocations struct{ positions map[int64]types.Point }

func (s *stubLocations) Get(_ context.Context, id int64) (location.Position, bool, error) {
	p, ok := s.positions[id]
	return location.Position{Point: p, Timestamp: time.Now()}, ok, nil
}

type stubMatrix struct{ legs []geo.Leg }

func (s *stubMatrix) Matrix(context.Context, types.Point, []types.Point) ([]geo.Leg, error) {
	return s.legs, nil
}

func matchingRouter(svc *matching.Service) *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/pickups/find-riders", NewMatchingHandler(svc).FindRiders)
	return r
}

func post(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFindRidersOK(t *testing.T) {
	riders := []rider.Rider{
		{ID: 1, Name: "A", PhoneNumber: "+1", VehicleNumber: "V1", VehicleType: rider.VehicleCar, CapacityKg: 60},
		{ID: 2, Name: "B", PhoneNumber: "+2", VehicleNumber: "V2", VehicleType: rider.VehicleCar, CapacityKg: 60},
	}
	svc := matching.NewService(
		&stubGeocoder{point: types.Point{Lat: 6.45, Lng: 3.39}},
		&stubRiders{riders: riders},
		&stubLocations{positions: map[int64]types.Point{1: {Lat: 6.5, Lng: 3.3}, 2: {Lat: 6.6, Lng: 3.4}}},
		&stubMatrix{legs: []geo.Leg{
			{Meters: 1000, Duration: 300 * time.Second, OK: true},
			{Meters: 400, Duration: 120 * time.Second, OK: true},
		}},
		config.MatchingConfig{PoolLimit: 20, MaxCandidates: 5},
		zap.NewNop(),
	)

	w := post(matchingRouter(svc), "/api/v1/pickups/find-riders", gin.H{
		"pickupAddress": "12 Marina Rd, Lagos",
		"country":       "Nigeria",
		"itemWeight":    10,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Riders []struct {
			RiderID  int64  `json:"riderId"`
			Duration int    `json:"duration"`
			ETA      string `json:"eta"`
		} `json:"riders"`
		VehicleType string  `json:"vehicleType"`
		ItemWeight  float64 `json:"itemWeight"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.VehicleType != "Car" || resp.ItemWeight != 10 {
		t.Fatalf("envelope mismatch: %+v", resp)
	}
	if len(resp.Riders) != 2 || resp.Riders[0].RiderID != 2 {
		t.Fatalf("expected rider 2 first, got %+v", resp.Riders)
	}
}

func TestFindRidersValidation(t *testing.T) {
	svc := matching.NewService(
		&stubGeocoder{}, &stubRiders{}, &stubLocations{}, &stubMatrix{},
		config.MatchingConfig{}, zap.NewNop(),
	)
	r := matchingRouter(svc)

	cases := []gin.H{
		{"country": "Nigeria", "itemWeight": 10},
		{"pickupAddress": "x", "itemWeight": 10},
		{"pickupAddress": "x", "country": "Nigeria"},
		{"pickupAddress": "x", "country": "Nigeria", "itemWeight": -1},
	}
	for i, body := range cases {
		if w := post(r, "/api/v1/pickups/find-riders", body); w.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, w.Code)
		}
	}
}

func TestFindRidersGeocodeFailure(t *testing.T) {
	svc := matching.NewService(
		&stubGeocoder{err: fmt.Errorf("%w: zero results", geo.ErrGeocode)},
		&stubRiders{}, &stubLocations{}, &stubMatrix{},
		config.MatchingConfig{}, zap.NewNop(),
	)
	w := post(matchingRouter(svc), "/api/v1/pickups/find-riders", gin.H{
		"pickupAddress": "nowhere",
		"country":       "Nigeria",
		"itemWeight":    10,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestAgentParamValidation(t *testing.T) {
	r := gin.New()
	h := NewAgentHandler(nil, nil)
	r.PATCH("/api/v1/agents/:riderId/pickups/:pickupId/status", h.UpdateStatus)

	raw, _ := json.Marshal(gin.H{"status": "InTransit"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/agents/notanumber/pickups/p1/status", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad rider id: status = %d, want 400", w.Code)
	}

	raw, _ = json.Marshal(gin.H{"status": "Teleported"})
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/agents/5/pickups/p1/status", bytes.NewReader(raw))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: status = %d, want 400", w.Code)
	}
}

func TestLocationEndpoints(t *testing.T) {
	locSvc := location.NewService(location.NewMemoryStore(), 15*time.Minute, zap.NewNop())
	h := NewLocationHandler(locSvc)

	r := gin.New()
	grp := r.Group("/api/v1/riders/:riderId/location")
	grp.PUT("", h.Report)
	grp.GET("", h.Get)
	grp.DELETE("", h.Remove)

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var req *http.Request
		if body != nil {
			raw, _ := json.Marshal(body)
			req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := do(http.MethodGet, "/api/v1/riders/9/location", nil); w.Code != http.StatusNotFound {
		t.Fatalf("get before report: status = %d, want 404", w.Code)
	}
	if w := do(http.MethodPut, "/api/v1/riders/9/location", gin.H{"lat": 95.0, "lng": 3.3}); w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range lat: status = %d, want 400", w.Code)
	}
	if w := do(http.MethodPut, "/api/v1/riders/9/location", gin.H{"lat": 6.5, "lng": 3.3, "heading": 45.0}); w.Code != http.StatusOK {
		t.Fatalf("report: status = %d", w.Code)
	}
	w := do(http.MethodGet, "/api/v1/riders/9/location", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status = %d", w.Code)
	}
	var resp struct {
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
		Heading float64 `json:"heading"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Lat != 6.5 || resp.Lng != 3.3 || resp.Heading != 45 {
		t.Fatalf("position mismatch: %+v", resp)
	}
	if w := do(http.MethodDelete, "/api/v1/riders/9/location", nil); w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if w := do(http.MethodGet, "/api/v1/riders/9/location", nil); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", w.Code)
	}
}
