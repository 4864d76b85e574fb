package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openride/ride-server/internal/api/dto"
	"github.com/openride/ride-server/internal/api/handlers"
	"github.com/openride/ride-server/internal/api/routes"
	"github.com/openride/ride-server/internal/config"
	"github.com/openride/ride-server/internal/service/geocoding"
	"github.com/openride/ride-server/internal/service/notify"
	"github.com/openride/ride-server/internal/service/routing"
	"github.com/openride/ride-server/pkg/database"
	"github.com/openride/ride-server/pkg/logger"
	"github.com/openride/ride-server/pkg/monitoring"
)

// testEnv is a full router wired against an in-memory database. The
// routing and geocoding clients point at an unreachable address until a
// test swaps in an httptest server.
type testEnv struct {
	h      *handlers.Handlers
	router *gin.Engine
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// a uniquely named shared-cache database keeps all pool connections
	// of one test on the same data and isolates tests from each other
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log, err := logger.New(logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)

	metrics, err := monitoring.New(monitoring.Config{})
	require.NoError(t, err)

	h := handlers.NewHandlers(
		db,
		log,
		routing.NewClient("http://127.0.0.1:1", time.Second),
		geocoding.NewClient("http://127.0.0.1:1", "openride-test/1.0", time.Second),
		notify.New("", "", time.Second, log),
		nil,
		metrics,
	)

	cfg := &config.Config{
		Server: config.ServerConfig{StaticDir: t.TempDir()},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}

	router := gin.New()
	routes.SetupRoutes(router, h, cfg, nil)

	return &testEnv{h: h, router: router, db: db}
}

// do performs a JSON request against the test router
func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// createUser registers an account through the API
func (e *testEnv) createUser(t *testing.T, username, userType string) dto.UserResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/api/users", gin.H{
		"username":  username,
		"email":     username + "@example.com",
		"user_type": userType,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// createRide requests a ride through the API; extra fields are merged in
func (e *testEnv) createRide(t *testing.T, passengerID uuid.UUID, extra gin.H) dto.RideResponse {
	t.Helper()
	body := gin.H{
		"passenger_id": passengerID,
		"origin":       "Alexanderplatz",
		"destination":  "Brandenburg Gate",
	}
	for k, v := range extra {
		body[k] = v
	}

	w := e.do(http.MethodPost, "/api/rides", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.RideResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// acceptRide assigns a driver through the API
func (e *testEnv) acceptRide(t *testing.T, rideID, driverID uuid.UUID) dto.RideResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/api/rides/"+rideID.String()+"/accept", gin.H{"driver_id": driverID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.RideResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// errorBody extracts the {"error": ...} message
func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}
