package service

import "time"

// timestampPrecision is the resolution of TIMESTAMPTZ columns.
const timestampPrecision = time.Microsecond

// now returns the current time rounded the way PostgreSQL stores it, so an
// entity returned by a mutation equals the one read back later.
func now() time.Time {
	return time.Now().Round(timestampPrecision)
}
