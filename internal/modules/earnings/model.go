// Package earnings estimates what a recycler is paid for an item, from
// per-category rates.
package earnings

import "errors"

var ErrUnknownCategory = errors.New("unknown item category")

// Rate pays RatePerKg minor units per kilogram for one item category.
type Rate struct {
	Category  string
	RatePerKg int64
	Currency  string
}
