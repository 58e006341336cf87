// Package usecase defines the application's use case interfaces and their
// input/output types. Implementations live in the impl subpackage.
package usecase

import (
	"context"

	"github.com/paulmach/orb"
)

// ResolvedLocation is the outcome of a successful location resolution.
type ResolvedLocation struct {
	Point   orb.Point // Coordinates as (lon, lat).
	Address string    // Normalized display string for the location.
}

// GeoResolver resolves a free-text location into coordinates and a normalized
// display string.
//
// A nil ResolvedLocation with a nil error means the location could not be
// resolved: the provider had no match, returned incomplete coordinates, or
// kept timing out until the retry budget ran out. Callers must treat that as
// a normal outcome, not a failure. An error is returned only for hard provider
// failures and for context cancellation.
type GeoResolver interface {
	Resolve(ctx context.Context, locationText string) (*ResolvedLocation, error)
}
