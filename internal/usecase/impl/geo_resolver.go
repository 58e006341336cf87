// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"cashtrail/internal/domain/service"
	"cashtrail/internal/errors"
	"cashtrail/internal/usecase"

	"go.uber.org/fx"
)

// maxResolveAttempts bounds the retry loop for timeout-class lookup failures.
// A definitive no-match never retries.
const maxResolveAttempts = 5

type geoResolver struct {
	geocoder service.Geocoder
	logger   *slog.Logger
}

// GeoResolverParams holds dependencies for the geo resolver, injected by Fx.
type GeoResolverParams struct {
	fx.In

	Geocoder service.Geocoder
	Logger   *slog.Logger
}

// NewGeoResolver creates a new geo resolver instance.
func NewGeoResolver(params GeoResolverParams) usecase.GeoResolver {
	return &geoResolver{
		geocoder: params.Geocoder,
		logger:   params.Logger,
	}
}

// Resolve looks up locationText with the provider, retrying timeouts up to
// maxResolveAttempts total attempts. Exhausted retries and no-match responses
// both degrade to (nil, nil); only hard provider errors and context
// cancellation surface as errors.
func (r *geoResolver) Resolve(ctx context.Context, locationText string) (*usecase.ResolvedLocation, error) {
	for attempt := 1; attempt <= maxResolveAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "location resolution abandoned")
		}

		result, err := r.geocoder.Lookup(ctx, locationText)
		if err != nil {
			if errors.Is(err, service.ErrGeocodeTimeout) {
				r.logger.Debug("Geocode attempt timed out",
					slog.String("query", locationText),
					slog.Int("attempt", attempt),
				)

				continue
			}

			return nil, errors.Wrap(err, "geocode lookup failed")
		}

		if result == nil {
			// Definitive no-match is a normal outcome.
			return nil, nil
		}

		return &usecase.ResolvedLocation{
			Point:   result.Point,
			Address: normalizeAddress(result.Address, locationText),
		}, nil
	}

	r.logger.Warn("Geocode retries exhausted, treating location as unresolved",
		slog.String("query", locationText),
		slog.Int("attempts", maxResolveAttempts),
	)

	return nil, nil
}

// normalizeAddress keeps the first comma-delimited segment of the provider's
// canonical address, falling back to the original query text.
func normalizeAddress(address, fallback string) string {
	segment, _, _ := strings.Cut(address, ",")
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return fallback
	}

	return segment
}
