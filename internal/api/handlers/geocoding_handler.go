package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openride/ride-server/pkg/errors"
	"github.com/openride/ride-server/pkg/logger"
)

// GeocodeAddress handles GET /api/geocoding/search?q=<address>
func (h *Handlers) GeocodeAddress(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.respondError(c, errors.BadRequest("q query parameter is required", nil))
		return
	}

	place, err := h.Geocoding.Geocode(c.Request.Context(), query)
	if err != nil {
		h.Logger.Warn("Geocoding failed",
			logger.String("query", query),
			logger.Err(err),
		)
		h.respondError(c, errors.ErrGeocodingUnavailable)
		return
	}

	c.JSON(http.StatusOK, place)
}

// ReverseGeocode handles GET /api/geocoding/reverse?lat=<lat>&lng=<lng>
func (h *Handlers) ReverseGeocode(c *gin.Context) {
	lat, lng, err := parseLatLng(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	address, err := h.Geocoding.ReverseGeocode(c.Request.Context(), lat, lng)
	if err != nil {
		h.Logger.Warn("Reverse geocoding failed",
			logger.Float64("lat", lat),
			logger.Float64("lng", lng),
			logger.Err(err),
		)
		h.respondError(c, errors.ErrGeocodingUnavailable)
		return
	}

	c.JSON(http.StatusOK, address)
}

// SearchNearby handles GET /api/geocoding/nearby?lat=<lat>&lng=<lng>&q=<query>&radius=<meters>
func (h *Handlers) SearchNearby(c *gin.Context) {
	lat, lng, err := parseLatLng(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	query := c.Query("q")
	if query == "" {
		h.respondError(c, errors.BadRequest("q query parameter is required", nil))
		return
	}

	radius := 1000
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.Atoi(raw)
		if err != nil || radius <= 0 {
			h.respondError(c, errors.BadRequest("radius must be a positive integer", err))
			return
		}
	}

	places, err := h.Geocoding.SearchNearby(c.Request.Context(), lat, lng, query, radius)
	if err != nil {
		h.Logger.Warn("Nearby search failed",
			logger.String("query", query),
			logger.Err(err),
		)
		h.respondError(c, errors.ErrGeocodingUnavailable)
		return
	}

	c.JSON(http.StatusOK, places)
}

func parseLatLng(c *gin.Context) (float64, float64, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return 0, 0, errors.BadRequest("lat query parameter is required", err)
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return 0, 0, errors.BadRequest("lng query parameter is required", err)
	}
	return lat, lng, nil
}
