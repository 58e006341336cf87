package impl

import (
	"context"
	"testing"

	"cashtrail/internal/domain/service"
	"cashtrail/internal/errors"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeoResolver(geocoder service.Geocoder) *geoResolver {
	return &geoResolver{
		geocoder: geocoder,
		logger:   testLogger(),
	}
}

func TestGeoResolverResolveSuccess(t *testing.T) {
	t.Parallel()

	geocoder := &scriptedGeocoder{steps: []geocodeStep{
		{result: &service.GeocodeResult{
			Point:   orb.Point{-79.3832, 43.6532},
			Address: "Tim Hortons, 123 Main St, Toronto, ON",
		}},
	}}
	resolver := newTestGeoResolver(geocoder)

	resolved, err := resolver.Resolve(context.Background(), "tim hortons toronto")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "Tim Hortons", resolved.Address)
	assert.InDelta(t, 43.6532, resolved.Point.Lat(), 1e-9)
	assert.InDelta(t, -79.3832, resolved.Point.Lon(), 1e-9)
	assert.Equal(t, 1, geocoder.calls())
}

func TestGeoResolverResolveAddressFallsBackToQuery(t *testing.T) {
	t.Parallel()

	geocoder := &scriptedGeocoder{steps: []geocodeStep{
		{result: &service.GeocodeResult{Point: orb.Point{10, 20}, Address: "  , Ontario, Canada"}},
	}}
	resolver := newTestGeoResolver(geocoder)

	resolved, err := resolver.Resolve(context.Background(), "somewhere obscure")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "somewhere obscure", resolved.Address)
}

func TestGeoResolverResolveNoMatch(t *testing.T) {
	t.Parallel()

	geocoder := &scriptedGeocoder{steps: []geocodeStep{{}}}
	resolver := newTestGeoResolver(geocoder)

	resolved, err := resolver.Resolve(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Nil(t, resolved)
	// A definitive no-match is not retried.
	assert.Equal(t, 1, geocoder.calls())
}

func TestGeoResolverResolveRetriesTimeouts(t *testing.T) {
	t.Parallel()

	geocoder := &scriptedGeocoder{steps: []geocodeStep{
		{err: service.ErrGeocodeTimeout},
		{err: service.ErrGeocodeTimeout},
		{result: &service.GeocodeResult{Point: orb.Point{1, 2}, Address: "Main St"}},
	}}
	resolver := newTestGeoResolver(geocoder)

	resolved, err := resolver.Resolve(context.Background(), "main st")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "Main St", resolved.Address)
	assert.Equal(t, 3, geocoder.calls())
}

func TestGeoResolverResolveExhaustsRetryBudget(t *testing.T) {
	t.Parallel()

	geocoder := &scriptedGeocoder{steps: []geocodeStep{{err: service.ErrGeocodeTimeout}}}
	resolver := newTestGeoResolver(geocoder)

	resolved, err := resolver.Resolve(context.Background(), "slow place")
	require.NoError(t, err)
	assert.Nil(t, resolved)
	assert.Equal(t, maxResolveAttempts, geocoder.calls())
}

func TestGeoResolverResolveHardFailure(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("403 blocked")
	geocoder := &scriptedGeocoder{steps: []geocodeStep{{err: providerErr}}}
	resolver := newTestGeoResolver(geocoder)

	resolved, err := resolver.Resolve(context.Background(), "anywhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
	assert.Nil(t, resolved)
	assert.Equal(t, 1, geocoder.calls())
}

func TestGeoResolverResolveCancelledContext(t *testing.T) {
	t.Parallel()

	geocoder := &scriptedGeocoder{steps: []geocodeStep{{err: service.ErrGeocodeTimeout}}}
	resolver := newTestGeoResolver(geocoder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolved, err := resolver.Resolve(ctx, "anywhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resolved)
	assert.Equal(t, 0, geocoder.calls())
}

func TestNormalizeAddress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Tim Hortons", normalizeAddress("Tim Hortons, Toronto, ON", "q"))
	assert.Equal(t, "No Commas Here", normalizeAddress("No Commas Here", "q"))
	assert.Equal(t, "q", normalizeAddress("", "q"))
	assert.Equal(t, "q", normalizeAddress("   ,tail", "q"))
}
