// Earnings rate store backed by PostgreSQL.
package earnings

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetRate(ctx context.Context, category string) (Rate, error) {
	row := s.db.QueryRow(ctx, `
        SELECT category, rate_per_kg, currency
        FROM earnings_rates
        WHERE category = $1`,
		strings.ToLower(strings.TrimSpace(category)),
	)
	var r Rate
	err := row.Scan(&r.Category, &r.RatePerKg, &r.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rate{}, ErrUnknownCategory
	}
	if err != nil {
		return Rate{}, err
	}
	return r, nil
}
