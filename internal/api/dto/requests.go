package dto

import "github.com/google/uuid"

// CreateUserRequest creates an account
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	UserType    string `json:"user_type" binding:"required"`
	IsAvailable bool   `json:"is_available"`
}

// UpdateUserRequest partially updates an account; only present fields are touched
type UpdateUserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	IsAvailable *bool   `json:"is_available"`
}

// UpdateLocationRequest records a user's live location
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// WaypointRequest is one intermediate stop in a route payload
type WaypointRequest struct {
	Lat     float64 `json:"lat" binding:"required"`
	Lng     float64 `json:"lng" binding:"required"`
	Address string  `json:"address"`
}

// CreateRideRequest requests a new ride
type CreateRideRequest struct {
	PassengerID    uuid.UUID         `json:"passenger_id" binding:"required"`
	Origin         string            `json:"origin" binding:"required"`
	Destination    string            `json:"destination" binding:"required"`
	OriginLat      *float64          `json:"origin_lat"`
	OriginLng      *float64          `json:"origin_lng"`
	DestinationLat *float64          `json:"destination_lat"`
	DestinationLng *float64          `json:"destination_lng"`
	Waypoints      []WaypointRequest `json:"waypoints"`
}

// AcceptRideRequest assigns a driver to an open ride
type AcceptRideRequest struct {
	DriverID uuid.UUID `json:"driver_id" binding:"required"`
}

// UpdateRideStatusRequest writes a lifecycle status
type UpdateRideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRideRouteRequest partially updates the ride's route; only present
// fields are touched
type UpdateRideRouteRequest struct {
	Origin         *string            `json:"origin"`
	Destination    *string            `json:"destination"`
	OriginLat      *float64           `json:"origin_lat"`
	OriginLng      *float64           `json:"origin_lng"`
	DestinationLat *float64           `json:"destination_lat"`
	DestinationLng *float64           `json:"destination_lng"`
	Waypoints      *[]WaypointRequest `json:"waypoints"`
}

// CalculateRouteRequest selects the routing profile; driving when omitted
type CalculateRouteRequest struct {
	Profile string `json:"profile"`
}

// DistanceToDriverRequest carries the driver's live coordinates
type DistanceToDriverRequest struct {
	DriverLat *float64 `json:"driver_lat" binding:"required"`
	DriverLng *float64 `json:"driver_lng" binding:"required"`
}

// SendMessageRequest sends an in-ride chat message
type SendMessageRequest struct {
	SenderID uuid.UUID `json:"sender_id" binding:"required"`
	Content  string    `json:"content" binding:"required"`
}
