package graph

import "time"

// SetClock swaps the timestamp source so tests can assert exact createdAt
// values, returning a func that restores the real clock.
// This file only compiles during `go test`.
func SetClock(now func() time.Time) (restore func()) {
	prev := timeNow
	timeNow = now
	return func() { timeNow = prev }
}
