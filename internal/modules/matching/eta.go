package matching

import (
	"fmt"
	"math"
)

// FormatETA renders a duration in seconds as the tiered human string the
// clients display: "45 secs", "2 mins", "1h 30m" ("1h" when minutes round to
// zero), "1 day" / "3 days".
func FormatETA(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%d secs", int(math.Round(seconds)))
	case seconds < 3600:
		return fmt.Sprintf("%d mins", int(math.Round(seconds/60)))
	case seconds < 86400:
		hours := int(seconds) / 3600
		mins := int(math.Round(math.Mod(seconds, 3600) / 60))
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	default:
		days := int(seconds) / 86400
		if days > 1 {
			return fmt.Sprintf("%d days", days)
		}
		return "1 day"
	}
}
