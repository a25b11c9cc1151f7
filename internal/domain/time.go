package domain

import "time"

// Now returns the current UTC time truncated to microseconds, the finest
// resolution both storage backends round-trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NextUpdatedAt returns now, or prev plus one microsecond when now does not
// come after prev. Successive updates always move updated_at forward.
func NextUpdatedAt(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}
