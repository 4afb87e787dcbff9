package earnings

import (
	"context"
	"math"

	"github.com/kemsguy7/pick-n-get/internal/types"
)

// RateSource looks up the payout rate for one item category.
type RateSource interface {
	GetRate(ctx context.Context, category string) (Rate, error)
}

type Service struct {
	rates RateSource
}

func NewService(rates RateSource) *Service {
	return &Service{rates: rates}
}

// Estimate computes the payout for weightKg of the given category.
// Unknown categories return ErrUnknownCategory; callers that treat the
// estimate as optional should fall back to a zero amount.
func (s *Service) Estimate(ctx context.Context, category string, weightKg float64) (types.Money, error) {
	rate, err := s.rates.GetRate(ctx, category)
	if err != nil {
		return types.Money{}, err
	}
	amount := int64(math.Round(float64(rate.RatePerKg) * weightKg))
	return types.Money{Amount: amount, Currency: rate.Currency}, nil
}
