// Package geocode provides the Nominatim-backed address lookup provider.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cashtrail/config"
	"cashtrail/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org/search"
	defaultUserAgent = "cashtrail/1.0"
	defaultTimeout   = 5 * time.Second

	// Responses larger than this are not plausible for a limit=1 query.
	maxResponseBytes = 1 << 20
)

// nominatimResult is the subset of the Nominatim jsonv2 response we consume.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// nominatimGeocoder implements service.Geocoder against a Nominatim-compatible
// search endpoint. Each Lookup is a single attempt with its own timeout; the
// retry policy lives with the caller.
type nominatimGeocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
}

// NewNominatimGeocoder is the constructor for nominatimGeocoder.
func NewNominatimGeocoder(cfg *config.Config) service.Geocoder {
	baseURL := defaultBaseURL
	userAgent := defaultUserAgent
	timeout := defaultTimeout

	if cfg.Geocoder != nil {
		if cfg.Geocoder.BaseURL != "" {
			baseURL = cfg.Geocoder.BaseURL
		}
		if cfg.Geocoder.UserAgent != "" {
			userAgent = cfg.Geocoder.UserAgent
		}
		if cfg.Geocoder.Timeout > 0 {
			timeout = cfg.Geocoder.Timeout
		}
	}

	return &nominatimGeocoder{
		client:    &http.Client{},
		baseURL:   baseURL,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Lookup performs a single search attempt against the provider. A nil result
// with a nil error means the provider found no match for the query.
func (g *nominatimGeocoder) Lookup(ctx context.Context, query string) (*service.GeocodeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.searchURL(query), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build geocode request")
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return nil, service.ErrGeocodeTimeout
		}

		return nil, errors.Wrap(err, "geocode request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if isTimeoutError(err) {
			return nil, service.ErrGeocodeTimeout
		}

		return nil, errors.Wrap(err, "failed to read geocode response")
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, errors.Wrap(err, "failed to decode geocode response")
	}

	if len(results) == 0 {
		return nil, nil
	}

	return toGeocodeResult(results[0]), nil
}

func (g *nominatimGeocoder) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	return fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
}

// toGeocodeResult converts the provider row. A row whose coordinates do not
// parse is treated as a no-match rather than an error.
func toGeocodeResult(row nominatimResult) *service.GeocodeResult {
	lat, latErr := strconv.ParseFloat(row.Lat, 64)
	lon, lonErr := strconv.ParseFloat(row.Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil
	}

	return &service.GeocodeResult{
		Point:   orb.Point{lon, lat},
		Address: row.DisplayName,
	}
}

// isTimeoutError reports whether err is a timeout-class transport failure.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
