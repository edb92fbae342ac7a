package infrastructure

import "time"

// SystemClock reads the wall clock in UTC, truncated to microseconds so
// that values survive a round trip through a PostgreSQL timestamptz
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
