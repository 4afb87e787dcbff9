// Rider store backed by PostgreSQL.
package rider

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("rider not found")
	ErrExists   = errors.New("rider already exists")
)

const riderColumns = `id, name, phone_number, vehicle_number, home_address, wallet_address,
       vehicle_type, capacity_kg, country, rider_status, approval_status, created_at, updated_at`

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, r *Rider) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO riders (
            id, name, phone_number, vehicle_number, home_address, wallet_address,
            vehicle_type, capacity_kg, country, rider_status, approval_status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, r.Name, r.PhoneNumber, r.VehicleNumber, r.HomeAddress, r.WalletAddress,
		string(r.VehicleType), r.CapacityKg, r.Country, string(r.RiderStatus), string(r.ApprovalStatus),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrExists
	}
	return err
}

func (s *Store) Get(ctx context.Context, id int64) (*Rider, error) {
	row := s.db.QueryRow(ctx, `SELECT `+riderColumns+` FROM riders WHERE id = $1`, id)
	return scanRider(row)
}

// FindEligible returns available, approved riders matching the query,
// capped at q.Limit before any routing call is made.
func (s *Store) FindEligible(ctx context.Context, q EligibleQuery) ([]Rider, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
        SELECT `+riderColumns+`
        FROM riders
        WHERE vehicle_type ILIKE $1
          AND rider_status = $2
          AND approval_status = $3
          AND country ILIKE $4
          AND capacity_kg >= $5
        ORDER BY id
        LIMIT $6`,
		string(q.VehicleType), string(StatusAvailable), string(ApprovalApproved),
		q.Country, q.MinCapacity, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rider
	for rows.Next() {
		r, err := scanRider(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// SetStatus flips rider_status only when the current value matches from,
// reporting whether the flip happened. This is the assignment-exclusivity
// primitive: concurrent assigners race on the matched-row count.
func (s *Store) SetStatus(ctx context.Context, id int64, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE riders SET rider_status = $1, updated_at = NOW()
        WHERE id = $2 AND rider_status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SetApproval is the admin-approval collaborator's write path.
func (s *Store) SetApproval(ctx context.Context, id int64, approval ApprovalStatus) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE riders SET approval_status = $1, updated_at = NOW()
        WHERE id = $2`,
		string(approval), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRider(row rowScanner) (*Rider, error) {
	var r Rider
	err := row.Scan(
		&r.ID, &r.Name, &r.PhoneNumber, &r.VehicleNumber, &r.HomeAddress, &r.WalletAddress,
		&r.VehicleType, &r.CapacityKg, &r.Country, &r.RiderStatus, &r.ApprovalStatus,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
