package graph

import "time"

// timeNow is a package-level variable for testability.
// Tests can replace this to control timestamps in assertions.
var timeNow = time.Now

// stamp formats the current time the way snapshots store it.
func stamp() string {
	return timeNow().UTC().Format(time.RFC3339)
}
