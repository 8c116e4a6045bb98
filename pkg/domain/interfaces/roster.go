package interfaces

import "context"

// RosterSource fetches the raw delimited roster text from its external
// origin. Each call must return fresh data, never a cached copy.
type RosterSource interface {
	Fetch(ctx context.Context) (string, error)
}
