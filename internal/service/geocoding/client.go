package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/openride/ride-server/internal/service/routing"
)

// Place is a geocoded location
type Place struct {
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	DisplayName string                 `json:"display_name"`
	Address     map[string]interface{} `json:"address,omitempty"`
	Importance  float64                `json:"importance"`
}

// Address is the result of a reverse lookup
type Address struct {
	DisplayName string                 `json:"display_name"`
	Address     map[string]interface{} `json:"address,omitempty"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
}

// Client wraps a Nominatim-compatible geocoding service. Same contract as
// the routing client: one request per call, fixed timeout, no retries,
// typed errors.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a geocoding client. Nominatim's usage policy requires
// an identifying User-Agent on every request.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent)

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type nominatimResult struct {
	Lat         string                 `json:"lat"`
	Lon         string                 `json:"lon"`
	DisplayName string                 `json:"display_name"`
	Address     map[string]interface{} `json:"address"`
	Importance  float64                `json:"importance"`
}

// Geocode resolves an address to its best-match place
func (c *Client) Geocode(ctx context.Context, address string) (*Place, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              address,
			"format":         "json",
			"addressdetails": "1",
			"limit":          "1",
		}).
		Get(c.baseURL + "/search")
	if err != nil {
		return nil, transportError(err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode())
	}

	var results []nominatimResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, decodeError(err)
	}
	if len(results) == 0 {
		return nil, upstreamErrorf("no match for %q", address)
	}

	return toPlace(results[0])
}

// ReverseGeocode resolves coordinates to an address
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (*Address, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":            formatFloat(lat),
			"lon":            formatFloat(lng),
			"format":         "json",
			"addressdetails": "1",
		}).
		Get(c.baseURL + "/reverse")
	if err != nil {
		return nil, transportError(err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode())
	}

	var result struct {
		DisplayName string                 `json:"display_name"`
		Address     map[string]interface{} `json:"address"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, decodeError(err)
	}
	if result.DisplayName == "" {
		return nil, upstreamErrorf("no address at %f,%f", lat, lng)
	}

	return &Address{
		DisplayName: result.DisplayName,
		Address:     result.Address,
		Latitude:    lat,
		Longitude:   lng,
	}, nil
}

// SearchNearby looks up points of interest inside a bounding box computed
// from the radius in meters.
func (c *Client) SearchNearby(ctx context.Context, lat, lng float64, query string, radiusMeters int) ([]Place, error) {
	// one degree of latitude is roughly 111320 meters
	latOffset := float64(radiusMeters) / 111320
	lngOffset := float64(radiusMeters) / (111320 * math.Abs(lat))

	viewbox := strings.Join([]string{
		formatFloat(lng - lngOffset),
		formatFloat(lat + latOffset),
		formatFloat(lng + lngOffset),
		formatFloat(lat - latOffset),
	}, ",")

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              query,
			"format":         "json",
			"addressdetails": "1",
			"limit":          "10",
			"viewbox":        viewbox,
			"bounded":        "1",
		}).
		Get(c.baseURL + "/search")
	if err != nil {
		return nil, transportError(err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode())
	}

	var results []nominatimResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, decodeError(err)
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		p, err := toPlace(r)
		if err != nil {
			return nil, err
		}
		places = append(places, *p)
	}
	return places, nil
}

func toPlace(r nominatimResult) (*Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, decodeError(err)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, decodeError(err)
	}
	return &Place{
		Latitude:    lat,
		Longitude:   lng,
		DisplayName: r.DisplayName,
		Address:     r.Address,
		Importance:  r.Importance,
	}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// The geocoding client shares the routing client's failure taxonomy.

func transportError(err error) *routing.Error {
	return &routing.Error{Kind: routing.KindTransport, Err: err}
}

func statusError(code int) *routing.Error {
	return &routing.Error{Kind: routing.KindStatus, StatusCode: code}
}

func decodeError(err error) *routing.Error {
	return &routing.Error{Kind: routing.KindDecode, Err: err}
}

func upstreamErrorf(format string, args ...interface{}) *routing.Error {
	return &routing.Error{Kind: routing.KindUpstream, Err: fmt.Errorf(format, args...)}
}
