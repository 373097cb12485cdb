package hub

import (
	"errors"
	"fmt"
)

// ErrNotFound means the hub database has no row for the requested game ID.
var ErrNotFound = errors.New("game not found")

// ErrNoSource means the game row carries neither a demo hash nor a source
// URL, so there is nowhere to fetch stats from.
var ErrNoSource = errors.New("no demo source for game")

// UpstreamError is a non-success status from the hub database query.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("hub db returned status %d", e.Status)
}

// StatsFetchError is a failed download of the ktxstats payload: either a
// non-success status or a transport failure such as the 10 second timeout.
type StatsFetchError struct {
	Status int
	URL    string
	Err    error
}

func (e *StatsFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stats fetch failed for %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("stats fetch failed (%d) for %s", e.Status, e.URL)
}

func (e *StatsFetchError) Unwrap() error {
	return e.Err
}
