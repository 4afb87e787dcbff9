// Pickup store backed by PostgreSQL. Assignment and transitions run inside
// single transactions so the pickup row and the rider's availability never
// disagree.
package pickup

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
	"github.com/kemsguy7/pick-n-get/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const pickupColumns = `
    id, tracking_id, rider_id, user_id, item_id,
    customer_name, customer_phone_number, pickup_address, pickup_lat, pickup_lng,
    item_category, item_weight_kg, item_description,
    estimated_earnings, earnings_currency, pickup_status,
    requested_at, accepted_at, collected_at, delivered_at, cancel_reason,
    created_at, updated_at`

// CreateAssigned inserts the pickup and flips its rider Available→OnTrip in
// one transaction. A rider that lost the race to a concurrent assignment
// surfaces as ErrRiderUnavailable and nothing is persisted.
func (s *Store) CreateAssigned(ctx context.Context, p *Pickup) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lat, lng *float64
	if p.PickupPoint != nil {
		lat, lng = &p.PickupPoint.Lat, &p.PickupPoint.Lng
	}
	_, err = tx.Exec(ctx, `
        INSERT INTO pickups (
            id, tracking_id, rider_id, user_id, item_id,
            customer_name, customer_phone_number, pickup_address, pickup_lat, pickup_lng,
            item_category, item_weight_kg, item_description,
            estimated_earnings, earnings_currency, pickup_status, requested_at
        ) VALUES (
            $1, $2, $3, $4, $5,
            $6, $7, $8, $9, $10,
            $11, $12, $13,
            $14, $15, $16, $17
        )`,
		p.ID, p.TrackingID, p.RiderID, p.UserID, p.ItemID,
		p.CustomerName, p.CustomerPhone, p.PickupAddress, lat, lng,
		p.ItemCategory, p.ItemWeightKg, p.ItemDescription,
		p.EstimatedEarnings.Amount, p.EstimatedEarnings.Currency,
		string(p.Status), p.RequestedAt,
	)
	if err != nil {
		return mapInsertErr(err)
	}

	tag, err := tx.Exec(ctx, `
        UPDATE riders
        SET rider_status = $1, updated_at = NOW()
        WHERE id = $2 AND rider_status = $3`,
		string(rider.StatusOnTrip), p.RiderID, string(rider.StatusAvailable),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrRiderUnavailable
	}

	if err := appendEvent(ctx, tx, &Event{
		PickupID:   p.ID,
		FromStatus: StatusNone,
		ToStatus:   p.Status,
		ActorType:  "user",
		ActorID:    &p.UserID,
		CreatedAt:  p.RequestedAt,
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Transition moves riderID's pickup from → to with a conditional update and
// flips the rider back to Available on the terminal states. The returned bool
// is false when the row no longer matched (lost a concurrent transition).
func (s *Store) Transition(ctx context.Context, pickupID string, riderID int64, from, to Status, reason *string) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE pickups
        SET pickup_status = $1,
            accepted_at   = CASE WHEN $1 = 'InTransit' THEN COALESCE(accepted_at, NOW())  ELSE accepted_at END,
            collected_at  = CASE WHEN $1 = 'PickedUp'  THEN COALESCE(collected_at, NOW()) ELSE collected_at END,
            delivered_at  = CASE WHEN $1 = 'Delivered' THEN COALESCE(delivered_at, NOW()) ELSE delivered_at END,
            cancel_reason = COALESCE($2, cancel_reason),
            updated_at    = NOW()
        WHERE id = $3 AND rider_id = $4 AND pickup_status = $5`,
		string(to), reason, pickupID, riderID, string(from),
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}

	if to == StatusDelivered || to == StatusCancelled {
		_, err = tx.Exec(ctx, `
            UPDATE riders
            SET rider_status = $1, updated_at = NOW()
            WHERE id = $2`,
			string(rider.StatusAvailable), riderID,
		)
		if err != nil {
			return false, err
		}
	}

	if err := appendEvent(ctx, tx, &Event{
		PickupID:   pickupID,
		FromStatus: from,
		ToStatus:   to,
		ActorType:  "rider",
		ActorID:    &riderID,
		CreatedAt:  time.Now(),
	}); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

func (s *Store) Get(ctx context.Context, id string) (*Pickup, error) {
	row := s.db.QueryRow(ctx, `SELECT `+pickupColumns+` FROM pickups WHERE id = $1`, id)
	return scanPickup(row)
}

func (s *Store) GetByTracking(ctx context.Context, trackingID string) (*Pickup, error) {
	row := s.db.QueryRow(ctx, `SELECT `+pickupColumns+` FROM pickups WHERE tracking_id = $1`, trackingID)
	return scanPickup(row)
}

// FindOpenByUserItem returns the open (Pending or InTransit) pickup for a
// (user, item) pair, or ErrNotFound.
func (s *Store) FindOpenByUserItem(ctx context.Context, userID, itemID int64) (*Pickup, error) {
	row := s.db.QueryRow(ctx, `
        SELECT `+pickupColumns+`
        FROM pickups
        WHERE user_id = $1 AND item_id = $2
          AND pickup_status IN ('Pending', 'InTransit')`,
		userID, itemID,
	)
	return scanPickup(row)
}

func (s *Store) TrackingIDExists(ctx context.Context, trackingID string) (bool, error) {
	row := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pickups WHERE tracking_id = $1)`, trackingID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func appendEvent(ctx context.Context, tx pgx.Tx, e *Event) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO pickup_status_events (
            pickup_id, from_status, to_status, actor_type, actor_id, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.PickupID, string(e.FromStatus), string(e.ToStatus),
		e.ActorType, e.ActorID, e.CreatedAt,
	)
	return err
}

func mapInsertErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "pickups_tracking_id_key":
			return ErrTrackingCollision
		case "idx_pickups_open_user_item":
			return ErrConflict
		}
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPickup(row rowScanner) (*Pickup, error) {
	var p Pickup
	var lat, lng *float64
	err := row.Scan(
		&p.ID, &p.TrackingID, &p.RiderID, &p.UserID, &p.ItemID,
		&p.CustomerName, &p.CustomerPhone, &p.PickupAddress, &lat, &lng,
		&p.ItemCategory, &p.ItemWeightKg, &p.ItemDescription,
		&p.EstimatedEarnings.Amount, &p.EstimatedEarnings.Currency, &p.Status,
		&p.RequestedAt, &p.AcceptedAt, &p.CollectedAt, &p.DeliveredAt, &p.CancelReason,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		p.PickupPoint = &types.Point{Lat: *lat, Lng: *lng}
	}
	return &p, nil
}
