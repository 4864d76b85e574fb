package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Profile selects the OSRM routing profile
type Profile string

const (
	ProfileDriving Profile = "driving"
	ProfileWalking Profile = "walking"
	ProfileCycling Profile = "cycling"
)

// IsValid validates the profile value
func (p Profile) IsValid() bool {
	switch p {
	case ProfileDriving, ProfileWalking, ProfileCycling:
		return true
	}
	return false
}

// Coordinate is a geographic point
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route is the result of a route calculation
type Route struct {
	// Distance in meters
	Distance float64 `json:"distance"`
	// Duration in seconds
	Duration float64 `json:"duration"`
	// Geometry is the GeoJSON line returned by the router
	Geometry  json.RawMessage `json:"geometry,omitempty"`
	Legs      json.RawMessage `json:"legs,omitempty"`
	Waypoints json.RawMessage `json:"waypoints,omitempty"`
}

// Matrix holds pairwise distances (meters) and durations (seconds)
type Matrix struct {
	Distances [][]float64 `json:"distances"`
	Durations [][]float64 `json:"durations"`
}

// RoadPoint is the nearest point on the road network
type RoadPoint struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
	// Distance in meters from the queried point
	Distance float64 `json:"distance"`
}

// Client wraps an OSRM-compatible routing service. Every operation issues
// a single request with a fixed timeout; failures are never retried and
// surface as *Error.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a routing client against the given OSRM base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type osrmRouteResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Routes  []osrmRoute     `json:"routes"`
	Points  json.RawMessage `json:"waypoints"`
}

type osrmRoute struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Geometry json.RawMessage `json:"geometry"`
	Legs     json.RawMessage `json:"legs"`
}

// CalculateRoute computes a route visiting the coordinates in order
func (c *Client) CalculateRoute(ctx context.Context, coords []Coordinate, profile Profile) (*Route, error) {
	if len(coords) < 2 {
		return nil, upstreamError(fmt.Errorf("need at least two coordinates, got %d", len(coords)))
	}

	url := fmt.Sprintf("%s/route/v1/%s/%s", c.baseURL, profile, formatCoords(coords))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"overview":   "full",
			"geometries": "geojson",
			"steps":      "true",
		}).
		Get(url)
	if err != nil {
		return nil, transportError(err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode())
	}

	var payload osrmRouteResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, decodeError(err)
	}
	if payload.Code != "Ok" || len(payload.Routes) == 0 {
		return nil, upstreamError(fmt.Errorf("router answered %q: %s", payload.Code, payload.Message))
	}

	best := payload.Routes[0]
	return &Route{
		Distance:  best.Distance,
		Duration:  best.Duration,
		Geometry:  best.Geometry,
		Legs:      best.Legs,
		Waypoints: payload.Points,
	}, nil
}

type osrmTableResponse struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Distances [][]float64 `json:"distances"`
	Durations [][]float64 `json:"durations"`
}

// DistanceMatrix computes pairwise distances and durations between points
func (c *Client) DistanceMatrix(ctx context.Context, coords []Coordinate, profile Profile) (*Matrix, error) {
	if len(coords) < 2 {
		return nil, upstreamError(fmt.Errorf("need at least two coordinates, got %d", len(coords)))
	}

	url := fmt.Sprintf("%s/table/v1/%s/%s", c.baseURL, profile, formatCoords(coords))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("annotations", "distance,duration").
		Get(url)
	if err != nil {
		return nil, transportError(err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode())
	}

	var payload osrmTableResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, decodeError(err)
	}
	if payload.Code != "Ok" {
		return nil, upstreamError(fmt.Errorf("router answered %q: %s", payload.Code, payload.Message))
	}

	return &Matrix{
		Distances: payload.Distances,
		Durations: payload.Durations,
	}, nil
}

type osrmNearestResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Waypoints []struct {
		Location [2]float64 `json:"location"` // lng, lat
		Distance float64    `json:"distance"`
	} `json:"waypoints"`
}

// NearestRoad snaps a point to the closest position on the road network
func (c *Client) NearestRoad(ctx context.Context, lat, lng float64, profile Profile) (*RoadPoint, error) {
	url := fmt.Sprintf("%s/nearest/v1/%s/%f,%f", c.baseURL, profile, lng, lat)

	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, transportError(err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode())
	}

	var payload osrmNearestResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, decodeError(err)
	}
	if payload.Code != "Ok" || len(payload.Waypoints) == 0 {
		return nil, upstreamError(fmt.Errorf("router answered %q: %s", payload.Code, payload.Message))
	}

	nearest := payload.Waypoints[0]
	return &RoadPoint{
		Lat:      nearest.Location[1],
		Lng:      nearest.Location[0],
		Distance: nearest.Distance,
	}, nil
}

// formatCoords renders coordinates in OSRM's longitude,latitude order
func formatCoords(coords []Coordinate) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = fmt.Sprintf("%f,%f", c.Lng, c.Lat)
	}
	return strings.Join(parts, ";")
}
