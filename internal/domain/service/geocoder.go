// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"

	"cashtrail/internal/errors"

	"github.com/paulmach/orb"
)

// ErrGeocodeTimeout marks a transient, timeout-class lookup failure. Callers
// retry on it; any other error from Lookup is a hard provider failure and is
// not retried.
var ErrGeocodeTimeout = errors.New("geocode lookup timed out")

// GeocodeResult is a single match returned by the address lookup provider.
type GeocodeResult struct {
	Point   orb.Point // Coordinates as (lon, lat).
	Address string    // The provider's canonical display address. May be empty.
}

// Geocoder performs a single external address lookup attempt. A nil result
// with a nil error is a definitive no-match, which is distinct from a timeout.
type Geocoder interface {
	Lookup(ctx context.Context, query string) (*GeocodeResult, error)
}
