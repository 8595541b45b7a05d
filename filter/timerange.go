package filter

import (
	"slices"
	"time"
)

// TimeRange is a bounded lookback window for log queries.
type TimeRange string

// Selectable time ranges, shortest first.
const (
	Range1h   TimeRange = "1h"
	Range6h   TimeRange = "6h"
	Range24h  TimeRange = "24h"
	Range7d   TimeRange = "7d"
	Range30d  TimeRange = "30d"
	Range60d  TimeRange = "60d"
	Range90d  TimeRange = "90d"
	Range180d TimeRange = "180d"
	Range365d TimeRange = "365d"
)

// Ranges lists all selectable time ranges in ascending order.
var Ranges = []TimeRange{
	Range1h, Range6h, Range24h, Range7d, Range30d,
	Range60d, Range90d, Range180d, Range365d,
}

// Days returns the day-equivalent of the range. Sub-day ranges return 0 and
// are never subject to a retention cap.
func (r TimeRange) Days() int {
	switch r {
	case Range1h, Range6h:
		return 0
	case Range24h:
		return 1
	case Range7d:
		return 7
	case Range30d:
		return 30
	case Range60d:
		return 60
	case Range90d:
		return 90
	case Range180d:
		return 180
	case Range365d:
		return 365
	default:
		return 0
	}
}

// Duration returns the lookback window as a time.Duration.
func (r TimeRange) Duration() time.Duration {
	switch r {
	case Range1h:
		return time.Hour
	case Range6h:
		return 6 * time.Hour
	default:
		return time.Duration(r.Days()) * 24 * time.Hour
	}
}

// Valid reports whether r is one of the selectable ranges.
func (r TimeRange) Valid() bool {
	return slices.Contains(Ranges, r)
}

// Clamp returns r unchanged when its day-equivalent is within maxDays,
// otherwise the largest selectable range that fits. Sub-day ranges always
// pass. A maxDays of zero or less means no cap. When two fitting ranges
// share a day-equivalent the shorter one wins.
func (r TimeRange) Clamp(maxDays int) TimeRange {
	if maxDays <= 0 || r.Days() <= maxDays {
		return r
	}
	best := Ranges[0]
	for _, c := range Ranges {
		if c.Days() <= maxDays && c.Days() > best.Days() {
			best = c
		}
	}
	return best
}
