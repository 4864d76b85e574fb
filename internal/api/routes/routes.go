package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/openride/ride-server/internal/api/handlers"
	"github.com/openride/ride-server/internal/config"
)

// SetupRoutes configures all API routes, the informational endpoints and
// the static front-end fallback.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, cfg *config.Config, nrApp *newrelic.Application) {
	if nrApp != nil {
		r.Use(nrgin.Middleware(nrApp))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "OpenRide Backend API",
			"version": "1.0.0",
			"status":  "running",
			"endpoints": gin.H{
				"users":     "/api/users",
				"rides":     "/api/rides",
				"messages":  "/api/rides/:id/messages",
				"geocoding": "/api/geocoding/search",
			},
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Backend is running"})
	})

	api := r.Group("/api")
	{
		api.GET("/ws", h.HandleWebSocket)

		users := api.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.POST("", h.CreateUser)
			users.GET("/:id", h.GetUser)
			users.PUT("/:id", h.UpdateUser)
			users.DELETE("/:id", h.DeleteUser)
			users.PUT("/:id/location", h.UpdateUserLocation)
			users.GET("/:id/location", h.GetUserLocation)
		}

		geocoding := api.Group("/geocoding")
		{
			geocoding.GET("/search", h.GeocodeAddress)
			geocoding.GET("/reverse", h.ReverseGeocode)
			geocoding.GET("/nearby", h.SearchNearby)
		}

		rides := api.Group("/rides")
		{
			rides.GET("", h.ListRides)
			rides.POST("", h.CreateRide)
			rides.GET("/:id", h.GetRide)
			rides.POST("/:id/accept", h.AcceptRide)
			rides.PUT("/:id/status", h.UpdateRideStatus)
			rides.PUT("/:id/route", h.UpdateRideRoute)
			rides.POST("/:id/calculate-route", h.CalculateRoute)
			rides.POST("/:id/distance-to-driver", h.DistanceToDriver)
			rides.POST("/:id/messages", h.SendMessage)
			rides.GET("/:id/messages", h.ListMessages)
		}
	}

	// bundled front-end: serve matching files from the static dir,
	// everything else falls back to index.html
	staticDir := cfg.Server.StaticDir
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}

		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "index.html not found"})
	})
}
