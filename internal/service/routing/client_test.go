package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

// TestCalculateRoute_Success tests a successful route calculation
func TestCalculateRoute_Success(t *testing.T) {
	var gotPath, gotOverview string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOverview = r.URL.Query().Get("overview")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{"distance": 1523.4, "duration": 312.7, "geometry": {"type": "LineString", "coordinates": []}}],
			"waypoints": [{"name": "A"}, {"name": "B"}]
		}`))
	}))
	defer srv.Close()

	route, err := client.CalculateRoute(context.Background(), []Coordinate{
		{Lat: 52.52, Lng: 13.405},
		{Lat: 52.5163, Lng: 13.3777},
	}, ProfileDriving)

	require.NoError(t, err)
	assert.Equal(t, 1523.4, route.Distance)
	assert.Equal(t, 312.7, route.Duration)
	assert.NotEmpty(t, route.Geometry)
	assert.NotEmpty(t, route.Waypoints)

	// coordinates go on the path in longitude,latitude order
	assert.Equal(t, "/route/v1/driving/13.405000,52.520000;13.377700,52.516300", gotPath)
	assert.Equal(t, "full", gotOverview)
}

// TestCalculateRoute_TooFewCoordinates tests input validation
func TestCalculateRoute_TooFewCoordinates(t *testing.T) {
	client := NewClient("http://localhost:1", time.Second)

	_, err := client.CalculateRoute(context.Background(), []Coordinate{{Lat: 1, Lng: 2}}, ProfileDriving)

	var routingErr *Error
	require.ErrorAs(t, err, &routingErr)
	assert.Equal(t, KindUpstream, routingErr.Kind)
}

// TestCalculateRoute_HTTPError tests non-success status handling
func TestCalculateRoute_HTTPError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.CalculateRoute(context.Background(), []Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}, ProfileDriving)

	var routingErr *Error
	require.ErrorAs(t, err, &routingErr)
	assert.Equal(t, KindStatus, routingErr.Kind)
	assert.Equal(t, http.StatusBadGateway, routingErr.StatusCode)
}

// TestCalculateRoute_UpstreamCode tests the router rejecting the request
func TestCalculateRoute_UpstreamCode(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "message": "Impossible route between points"}`))
	}))
	defer srv.Close()

	_, err := client.CalculateRoute(context.Background(), []Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}, ProfileDriving)

	var routingErr *Error
	require.ErrorAs(t, err, &routingErr)
	assert.Equal(t, KindUpstream, routingErr.Kind)
	assert.Contains(t, routingErr.Error(), "NoRoute")
}

// TestCalculateRoute_MalformedBody tests decode failure handling
func TestCalculateRoute_MalformedBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := client.CalculateRoute(context.Background(), []Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}, ProfileDriving)

	var routingErr *Error
	require.ErrorAs(t, err, &routingErr)
	assert.Equal(t, KindDecode, routingErr.Kind)
}

// TestCalculateRoute_TransportError tests connection-level failure handling
func TestCalculateRoute_TransportError(t *testing.T) {
	// nothing listens here
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := client.CalculateRoute(context.Background(), []Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}, ProfileDriving)

	var routingErr *Error
	require.ErrorAs(t, err, &routingErr)
	assert.Equal(t, KindTransport, routingErr.Kind)
}

// TestDistanceMatrix_Success tests a successful matrix calculation
func TestDistanceMatrix_Success(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "distance,duration", r.URL.Query().Get("annotations"))
		w.Write([]byte(`{
			"code": "Ok",
			"distances": [[0, 100], [100, 0]],
			"durations": [[0, 20], [20, 0]]
		}`))
	}))
	defer srv.Close()

	matrix, err := client.DistanceMatrix(context.Background(), []Coordinate{
		{Lat: 1, Lng: 2},
		{Lat: 3, Lng: 4},
	}, ProfileDriving)

	require.NoError(t, err)
	require.Len(t, matrix.Distances, 2)
	assert.Equal(t, 100.0, matrix.Distances[0][1])
	assert.Equal(t, 20.0, matrix.Durations[0][1])
}

// TestNearestRoad_Success tests snapping a point to the road network
func TestNearestRoad_Success(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"code": "Ok",
			"waypoints": [{"location": [13.404954, 52.520008], "distance": 4.2}]
		}`))
	}))
	defer srv.Close()

	point, err := client.NearestRoad(context.Background(), 52.52, 13.405, ProfileDriving)

	require.NoError(t, err)
	assert.Equal(t, 52.520008, point.Lat)
	assert.Equal(t, 13.404954, point.Lng)
	assert.Equal(t, 4.2, point.Distance)
}

// TestProfileIsValid tests profile validation
func TestProfileIsValid(t *testing.T) {
	assert.True(t, ProfileDriving.IsValid())
	assert.True(t, ProfileWalking.IsValid())
	assert.True(t, ProfileCycling.IsValid())
	assert.False(t, Profile("flying").IsValid())
	assert.False(t, Profile("").IsValid())
}
