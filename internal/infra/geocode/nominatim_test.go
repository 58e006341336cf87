package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cashtrail/config"
	"cashtrail/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeocoderConfig(baseURL string) *config.Config {
	return &config.Config{
		Geocoder: &config.GeocoderConfig{
			BaseURL:   baseURL,
			UserAgent: "cashtrail-test/1.0",
			Timeout:   2 * time.Second,
		},
	}
}

func TestLookupParsesProviderResponse(t *testing.T) {
	t.Parallel()

	var gotQuery, gotFormat, gotLimit, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		gotLimit = r.URL.Query().Get("limit")
		gotAgent = r.Header.Get("User-Agent")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"43.6452","lon":"-79.3806","display_name":"CN Tower, 290 Bremner Blvd, Toronto, ON, Canada"}]`))
	}))
	defer srv.Close()

	geocoder := NewNominatimGeocoder(testGeocoderConfig(srv.URL))

	result, err := geocoder.Lookup(context.Background(), "CN Tower, Toronto")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "CN Tower, Toronto", gotQuery)
	assert.Equal(t, "jsonv2", gotFormat)
	assert.Equal(t, "1", gotLimit)
	assert.Equal(t, "cashtrail-test/1.0", gotAgent)

	assert.Equal(t, "CN Tower, 290 Bremner Blvd, Toronto, ON, Canada", result.Address)
	assert.InDelta(t, 43.6452, result.Point.Lat(), 1e-9)
	assert.InDelta(t, -79.3806, result.Point.Lon(), 1e-9)
}

func TestLookupEmptyResponseIsNoMatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	geocoder := NewNominatimGeocoder(testGeocoderConfig(srv.URL))

	result, err := geocoder.Lookup(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestLookupUnparseableCoordinatesIsNoMatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"-79.3806","display_name":"somewhere"}]`))
	}))
	defer srv.Close()

	geocoder := NewNominatimGeocoder(testGeocoderConfig(srv.URL))

	result, err := geocoder.Lookup(context.Background(), "somewhere")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestLookupTimeoutReturnsSentinel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	cfg := testGeocoderConfig(srv.URL)
	cfg.Geocoder.Timeout = 50 * time.Millisecond
	geocoder := NewNominatimGeocoder(cfg)

	result, err := geocoder.Lookup(context.Background(), "slow provider")
	assert.ErrorIs(t, err, service.ErrGeocodeTimeout)
	assert.Nil(t, result)
}

func TestLookupNonOKStatusIsHardFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	geocoder := NewNominatimGeocoder(testGeocoderConfig(srv.URL))

	result, err := geocoder.Lookup(context.Background(), "rate limited")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrGeocodeTimeout)
	assert.Nil(t, result)
}

func TestLookupMalformedBodyIsHardFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	geocoder := NewNominatimGeocoder(testGeocoderConfig(srv.URL))

	result, err := geocoder.Lookup(context.Background(), "bad body")
	require.Error(t, err)
	assert.Nil(t, result)
}
