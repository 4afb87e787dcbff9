// Package location is the live-position store for riders. Positions are
// ephemeral; the persisted rider record is never the system of record for
// where a rider currently is.
package location

import (
	"errors"
	"time"

	"github.com/kemsguy7/pick-n-get/internal/types"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Position is a rider's last reported location. Absence of a Position means
// the rider has no known location and is ineligible for matching.
type Position struct {
	Point     types.Point
	Heading   float64
	Timestamp time.Time
}
