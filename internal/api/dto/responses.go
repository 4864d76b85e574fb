package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/openride/ride-server/internal/domain/message"
	"github.com/openride/ride-server/internal/domain/ride"
	"github.com/openride/ride-server/internal/domain/user"
	"github.com/openride/ride-server/internal/service/routing"
)

// UserResponse is the account view
type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	UserType          string     `json:"user_type"`
	IsAvailable       bool       `json:"is_available"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	LocationUpdatedAt *time.Time `json:"location_updated_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewUserResponse assembles the account view
func NewUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		UserType:          string(u.UserType),
		IsAvailable:       u.IsAvailable,
		Latitude:          u.Latitude,
		Longitude:         u.Longitude,
		LocationUpdatedAt: u.LocationUpdatedAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// LocationResponse is the user location view
type LocationResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	LocationUpdatedAt time.Time `json:"location_updated_at"`
}

// RideResponse is the ride view with the related users composed in
// explicitly; nothing is lazy-loaded.
type RideResponse struct {
	ID             uuid.UUID       `json:"id"`
	PassengerID    uuid.UUID       `json:"passenger_id"`
	DriverID       *uuid.UUID      `json:"driver_id"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	OriginLat      *float64        `json:"origin_lat,omitempty"`
	OriginLng      *float64        `json:"origin_lng,omitempty"`
	DestinationLat *float64        `json:"destination_lat,omitempty"`
	DestinationLng *float64        `json:"destination_lng,omitempty"`
	Waypoints      []ride.Waypoint `json:"waypoints"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Passenger      *UserResponse   `json:"passenger"`
	Driver         *UserResponse   `json:"driver"`
}

// NewRideResponse assembles the ride view. passenger and driver may be nil
// when the referenced row no longer exists.
func NewRideResponse(r *ride.Ride, passenger, driver *user.User) *RideResponse {
	waypoints := []ride.Waypoint(r.Waypoints)
	if waypoints == nil {
		waypoints = []ride.Waypoint{}
	}
	return &RideResponse{
		ID:             r.ID,
		PassengerID:    r.PassengerID,
		DriverID:       r.DriverID,
		Origin:         r.Origin,
		Destination:    r.Destination,
		OriginLat:      r.OriginLat,
		OriginLng:      r.OriginLng,
		DestinationLat: r.DestinationLat,
		DestinationLng: r.DestinationLng,
		Waypoints:      waypoints,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Passenger:      NewUserResponse(passenger),
		Driver:         NewUserResponse(driver),
	}
}

// MessageResponse is the in-ride chat message view
type MessageResponse struct {
	ID         uuid.UUID     `json:"id"`
	RideID     uuid.UUID     `json:"ride_id"`
	SenderID   uuid.UUID     `json:"sender_id"`
	ReceiverID uuid.UUID     `json:"receiver_id"`
	Content    string        `json:"content"`
	CreatedAt  time.Time     `json:"created_at"`
	Sender     *UserResponse `json:"sender"`
	Receiver   *UserResponse `json:"receiver"`
}

// NewMessageResponse assembles the message view
func NewMessageResponse(m *message.Message, sender, receiver *user.User) *MessageResponse {
	return &MessageResponse{
		ID:         m.ID,
		RideID:     m.RideID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
		Sender:     NewUserResponse(sender),
		Receiver:   NewUserResponse(receiver),
	}
}

// RouteResponse is the result of a route calculation
type RouteResponse struct {
	DistanceMeters    float64         `json:"distance_meters"`
	DurationSeconds   float64         `json:"duration_seconds"`
	DistanceFormatted string          `json:"distance_formatted"`
	DurationFormatted string          `json:"duration_formatted"`
	Geometry          json.RawMessage `json:"geometry,omitempty"`
	Legs              json.RawMessage `json:"legs,omitempty"`
	Waypoints         json.RawMessage `json:"waypoints,omitempty"`
}

// NewRouteResponse assembles the route view with formatted values
func NewRouteResponse(rt *routing.Route) *RouteResponse {
	return &RouteResponse{
		DistanceMeters:    rt.Distance,
		DurationSeconds:   rt.Duration,
		DistanceFormatted: routing.FormatDistance(rt.Distance),
		DurationFormatted: routing.FormatDuration(rt.Duration),
		Geometry:          rt.Geometry,
		Legs:              rt.Legs,
		Waypoints:         rt.Waypoints,
	}
}
