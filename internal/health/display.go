package health

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// TimeUntilExpiry renders the Dead Man's Switch countdown for expiry.
func TimeUntilExpiry(expiry, now time.Time) string {
	diff := expiry.Sub(now)
	if diff <= 0 {
		return "EXPIRED"
	}

	days := int(diff / day)
	hours := int((diff % day) / time.Hour)

	switch {
	case days > 30:
		return fmt.Sprintf("%d months", days/30)
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	default:
		return fmt.Sprintf("%dh remaining", hours)
	}
}

// AgeSince renders how long ago a project was ghosted.
func AgeSince(created, now time.Time) string {
	days := int(now.Sub(created) / day)
	months := days / 30
	years := days / 365

	switch {
	case years > 0:
		return fmt.Sprintf("%d %s old", years, plural(years, "year"))
	case months > 0:
		return fmt.Sprintf("%d %s old", months, plural(months, "month"))
	case days > 0:
		return fmt.Sprintf("%d %s old", days, plural(days, "day"))
	default:
		return "Just ghosted"
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return unit + "s"
	}
	return unit
}
