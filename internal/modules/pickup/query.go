// Read-side projections: tracking views and per-user / per-rider listings.
package pickup

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kemsguy7/pick-n-get/internal/types"
)

// View is a pickup joined with its rider's contact details, as served to
// tracking and listing endpoints.
type View struct {
	Pickup
	RiderName          string `json:"riderName"`
	RiderPhone         string `json:"riderPhone"`
	RiderVehicleNumber string `json:"riderVehicleNumber"`
	RiderVehicleType   string `json:"riderVehicleType"`
}

const viewColumns = `
    p.id, p.tracking_id, p.rider_id, p.user_id, p.item_id,
    p.customer_name, p.customer_phone_number, p.pickup_address, p.pickup_lat, p.pickup_lng,
    p.item_category, p.item_weight_kg, p.item_description,
    p.estimated_earnings, p.earnings_currency, p.pickup_status,
    p.requested_at, p.accepted_at, p.collected_at, p.delivered_at, p.cancel_reason,
    p.created_at, p.updated_at,
    r.name, r.phone_number, r.vehicle_number, r.vehicle_type`

const viewFrom = ` FROM pickups p JOIN riders r ON r.id = p.rider_id`

func (s *Store) TrackByID(ctx context.Context, id string) (*View, error) {
	row := s.db.QueryRow(ctx, `SELECT `+viewColumns+viewFrom+` WHERE p.id = $1`, id)
	return scanView(row)
}

func (s *Store) TrackByCode(ctx context.Context, trackingID string) (*View, error) {
	row := s.db.QueryRow(ctx, `SELECT `+viewColumns+viewFrom+` WHERE p.tracking_id = $1`, trackingID)
	return scanView(row)
}

// UserActive lists a user's open pickups, newest first.
func (s *Store) UserActive(ctx context.Context, userID int64) ([]View, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+viewColumns+viewFrom+`
        WHERE p.user_id = $1
          AND p.pickup_status IN ('Pending', 'InTransit', 'PickedUp')
        ORDER BY p.requested_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectViews(rows)
}

// UserHistory lists a user's finished pickups, newest first, capped at limit
// (default 20).
func (s *Store) UserHistory(ctx context.Context, userID int64, limit int) ([]View, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
        SELECT `+viewColumns+viewFrom+`
        WHERE p.user_id = $1
          AND p.pickup_status IN ('Delivered', 'Cancelled')
        ORDER BY p.requested_at DESC
        LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectViews(rows)
}

// RiderActive lists pickups the rider is currently carrying.
func (s *Store) RiderActive(ctx context.Context, riderID int64) ([]View, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+viewColumns+viewFrom+`
        WHERE p.rider_id = $1
          AND p.pickup_status IN ('InTransit', 'PickedUp')
        ORDER BY p.requested_at DESC`,
		riderID,
	)
	if err != nil {
		return nil, err
	}
	return collectViews(rows)
}

// RiderJobs lists pickups assigned to the rider and awaiting acceptance.
func (s *Store) RiderJobs(ctx context.Context, riderID int64, limit int) ([]View, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(ctx, `
        SELECT `+viewColumns+viewFrom+`
        WHERE p.rider_id = $1 AND p.pickup_status = 'Pending'
        ORDER BY p.requested_at ASC
        LIMIT $2`,
		riderID, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectViews(rows)
}

func scanView(row rowScanner) (*View, error) {
	var v View
	var lat, lng *float64
	err := row.Scan(
		&v.ID, &v.TrackingID, &v.RiderID, &v.UserID, &v.ItemID,
		&v.CustomerName, &v.CustomerPhone, &v.PickupAddress, &lat, &lng,
		&v.ItemCategory, &v.ItemWeightKg, &v.ItemDescription,
		&v.EstimatedEarnings.Amount, &v.EstimatedEarnings.Currency, &v.Status,
		&v.RequestedAt, &v.AcceptedAt, &v.CollectedAt, &v.DeliveredAt, &v.CancelReason,
		&v.CreatedAt, &v.UpdatedAt,
		&v.RiderName, &v.RiderPhone, &v.RiderVehicleNumber, &v.RiderVehicleType,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		v.PickupPoint = &types.Point{Lat: *lat, Lng: *lng}
	}
	return &v, nil
}

func collectViews(rows pgx.Rows) ([]View, error) {
	defer rows.Close()
	out := make([]View, 0, 8)
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}
