package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openride/ride-server/internal/api/dto"
	"github.com/openride/ride-server/internal/domain/ride"
	"github.com/openride/ride-server/internal/domain/user"
	"github.com/openride/ride-server/internal/service/routing"
	"github.com/openride/ride-server/pkg/errors"
	"github.com/openride/ride-server/pkg/logger"
)

// CreateRide handles POST /api/rides
func (h *Handlers) CreateRide(c *gin.Context) {
	var req dto.CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.BadRequest("passenger_id, origin and destination are required", err))
		return
	}

	passenger, err := h.findUser(c, req.PassengerID)
	if err == errors.ErrUserNotFound || (err == nil && passenger.UserType != user.TypePassenger) {
		h.respondError(c, errors.ErrPassengerNotFound)
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	r := ride.Ride{
		PassengerID:    req.PassengerID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		OriginLat:      req.OriginLat,
		OriginLng:      req.OriginLng,
		DestinationLat: req.DestinationLat,
		DestinationLng: req.DestinationLng,
		Waypoints:      toWaypoints(req.Waypoints),
		Status:         ride.StatusRequested,
	}

	if err := h.DB.WithContext(c.Request.Context()).Create(&r).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to create ride", err))
		return
	}

	h.Logger.Info("Ride requested",
		logger.String("ride_id", r.ID.String()),
		logger.String("passenger_id", r.PassengerID.String()),
		logger.String("origin", r.Origin),
		logger.String("destination", r.Destination),
	)
	h.Metrics.RecordRideCreated(r.ID.String())

	c.JSON(http.StatusCreated, dto.NewRideResponse(&r, passenger, nil))
}

// AcceptRide handles POST /api/rides/:id/accept
func (h *Handlers) AcceptRide(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req dto.AcceptRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.BadRequest("driver_id is required", err))
		return
	}

	driver, err := h.findUser(c, req.DriverID)
	if err == errors.ErrUserNotFound || (err == nil && driver.UserType != user.TypeDriver) {
		h.respondError(c, errors.ErrDriverNotFound)
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Conditional update instead of read-then-write: the row only moves
	// to accepted if it is still in requested when the write lands, so
	// concurrent accepts cannot both win.
	res := h.DB.WithContext(c.Request.Context()).
		Model(&ride.Ride{}).
		Where("id = ? AND status = ?", id, ride.StatusRequested).
		Updates(map[string]interface{}{
			"driver_id": req.DriverID,
			"status":    ride.StatusAccepted,
		})
	if res.Error != nil {
		h.respondError(c, errors.Internal("Failed to accept ride", res.Error))
		return
	}

	if res.RowsAffected == 0 {
		// lost the race or the ride was never open; re-read to tell
		// a missing ride from a non-requested one
		if _, err := h.findRide(c, id); err != nil {
			h.respondError(c, err)
			return
		}
		h.respondError(c, errors.ErrRideNotOpen)
		return
	}

	r, err := h.findRide(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("Ride accepted",
		logger.String("ride_id", r.ID.String()),
		logger.String("driver_id", req.DriverID.String()),
	)
	h.Metrics.RecordRideAccepted(r.ID.String(), req.DriverID.String())

	passenger, _ := h.loadRideParties(c, r)
	c.JSON(http.StatusOK, dto.NewRideResponse(r, passenger, driver))
}

// UpdateRideStatus handles PUT /api/rides/:id/status
func (h *Handlers) UpdateRideStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req dto.UpdateRideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.BadRequest("status is required", err))
		return
	}

	status := ride.Status(req.Status)
	if !status.IsValid() {
		h.respondError(c, errors.ErrInvalidStatus)
		return
	}

	r, err := h.findRide(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !ride.CanTransition(r.Status, status) {
		h.respondError(c, errors.ErrInvalidStatus)
		return
	}

	previous := r.Status
	r.Status = status
	if err := h.DB.WithContext(c.Request.Context()).Save(r).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to update ride status", err))
		return
	}

	h.Logger.Info("Ride status updated",
		logger.String("ride_id", r.ID.String()),
		logger.String("from", string(previous)),
		logger.String("to", string(status)),
	)

	passenger, driver := h.loadRideParties(c, r)
	c.JSON(http.StatusOK, dto.NewRideResponse(r, passenger, driver))
}

// UpdateRideRoute handles PUT /api/rides/:id/route
func (h *Handlers) UpdateRideRoute(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req dto.UpdateRideRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.BadRequest("Invalid request payload", err))
		return
	}

	r, err := h.findRide(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if req.Origin != nil {
		r.Origin = *req.Origin
	}
	if req.Destination != nil {
		r.Destination = *req.Destination
	}
	if req.OriginLat != nil {
		r.OriginLat = req.OriginLat
	}
	if req.OriginLng != nil {
		r.OriginLng = req.OriginLng
	}
	if req.DestinationLat != nil {
		r.DestinationLat = req.DestinationLat
	}
	if req.DestinationLng != nil {
		r.DestinationLng = req.DestinationLng
	}
	if req.Waypoints != nil {
		r.Waypoints = toWaypoints(*req.Waypoints)
	}

	if err := h.DB.WithContext(c.Request.Context()).Save(r).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to update ride route", err))
		return
	}

	passenger, driver := h.loadRideParties(c, r)
	c.JSON(http.StatusOK, dto.NewRideResponse(r, passenger, driver))
}

// CalculateRoute handles POST /api/rides/:id/calculate-route
func (h *Handlers) CalculateRoute(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req dto.CalculateRouteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondError(c, errors.BadRequest("Invalid request payload", err))
			return
		}
	}

	profile := routing.ProfileDriving
	if req.Profile != "" {
		profile = routing.Profile(req.Profile)
		if !profile.IsValid() {
			h.respondError(c, errors.BadRequest("profile must be driving, walking or cycling", nil))
			return
		}
	}

	r, err := h.findRide(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !r.HasOriginCoords() || !r.HasDestinationCoords() {
		h.respondError(c, errors.ErrMissingRoute)
		return
	}

	// origin, then waypoints in stored order, then destination
	coords := make([]routing.Coordinate, 0, len(r.Waypoints)+2)
	coords = append(coords, routing.Coordinate{Lat: *r.OriginLat, Lng: *r.OriginLng})
	for _, wp := range r.Waypoints {
		coords = append(coords, routing.Coordinate{Lat: wp.Lat, Lng: wp.Lng})
	}
	coords = append(coords, routing.Coordinate{Lat: *r.DestinationLat, Lng: *r.DestinationLng})

	route, err := h.Routing.CalculateRoute(c.Request.Context(), coords, profile)
	if err != nil {
		h.Logger.Warn("Route calculation failed",
			logger.String("ride_id", r.ID.String()),
			logger.Err(err),
		)
		h.respondError(c, errors.ErrRouteUnavailable)
		return
	}

	c.JSON(http.StatusOK, dto.NewRouteResponse(route))
}

// DistanceToDriver handles POST /api/rides/:id/distance-to-driver
func (h *Handlers) DistanceToDriver(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req dto.DistanceToDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.BadRequest("driver_lat and driver_lng are required", err))
		return
	}

	r, err := h.findRide(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !r.HasDestinationCoords() {
		h.respondError(c, errors.ErrMissingRoute)
		return
	}

	route, err := h.Routing.CalculateRoute(c.Request.Context(), []routing.Coordinate{
		{Lat: *req.DriverLat, Lng: *req.DriverLng},
		{Lat: *r.DestinationLat, Lng: *r.DestinationLng},
	}, routing.ProfileDriving)
	if err != nil {
		h.Logger.Warn("Distance to driver failed",
			logger.String("ride_id", r.ID.String()),
			logger.Err(err),
		)
		h.respondError(c, errors.ErrRouteUnavailable)
		return
	}

	c.JSON(http.StatusOK, dto.NewRouteResponse(route))
}

// ListRides handles GET /api/rides
func (h *Handlers) ListRides(c *gin.Context) {
	query := h.DB.WithContext(c.Request.Context()).Model(&ride.Ride{})

	if v := c.Query("passenger_id"); v != "" {
		query = query.Where("passenger_id = ?", v)
	}
	if v := c.Query("driver_id"); v != "" {
		query = query.Where("driver_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		query = query.Where("status = ?", v)
	}

	var rides []ride.Ride
	if err := query.Order("created_at DESC").Find(&rides).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to list rides", err))
		return
	}

	out := make([]*dto.RideResponse, len(rides))
	for i := range rides {
		passenger, driver := h.loadRideParties(c, &rides[i])
		out[i] = dto.NewRideResponse(&rides[i], passenger, driver)
	}
	c.JSON(http.StatusOK, out)
}

// GetRide handles GET /api/rides/:id
func (h *Handlers) GetRide(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	r, err := h.findRide(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	passenger, driver := h.loadRideParties(c, r)
	c.JSON(http.StatusOK, dto.NewRideResponse(r, passenger, driver))
}

func toWaypoints(in []dto.WaypointRequest) ride.Waypoints {
	if len(in) == 0 {
		return nil
	}
	out := make(ride.Waypoints, len(in))
	for i, wp := range in {
		out[i] = ride.Waypoint{Lat: wp.Lat, Lng: wp.Lng, Address: wp.Address}
	}
	return out
}
