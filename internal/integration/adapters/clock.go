package adapters

import "time"

// SystemClock reads the wall clock in the server's local time zone, so
// calendar windows follow the operator's local date.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
