package ride

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ride represents one passenger-requested trip and its lifecycle status.
// Origin and destination are free text; coordinates are optional and only
// required by the route-calculation operations.
type Ride struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PassengerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"passenger_id"`
	DriverID       *uuid.UUID `gorm:"type:uuid;index" json:"driver_id"`
	Origin         string     `gorm:"not null" json:"origin"`
	Destination    string     `gorm:"not null" json:"destination"`
	OriginLat      *float64   `json:"origin_lat"`
	OriginLng      *float64   `json:"origin_lng"`
	DestinationLat *float64   `json:"destination_lat"`
	DestinationLng *float64   `json:"destination_lng"`
	Waypoints      Waypoints  `gorm:"type:text" json:"waypoints"`
	Status         Status     `gorm:"not null;default:'requested';index" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BeforeCreate assigns an ID when none was set by the caller
func (r *Ride) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// HasOriginCoords reports whether the origin coordinate pair is set
func (r *Ride) HasOriginCoords() bool {
	return r.OriginLat != nil && r.OriginLng != nil
}

// HasDestinationCoords reports whether the destination coordinate pair is set
func (r *Ride) HasDestinationCoords() bool {
	return r.DestinationLat != nil && r.DestinationLng != nil
}

// IsParticipant reports whether userID is the ride's passenger or driver
func (r *Ride) IsParticipant(userID uuid.UUID) bool {
	if r.PassengerID == userID {
		return true
	}
	return r.DriverID != nil && *r.DriverID == userID
}

// Counterpart returns the other party of the ride relative to userID.
// The second return is false while no driver is assigned or userID is
// not a participant.
func (r *Ride) Counterpart(userID uuid.UUID) (uuid.UUID, bool) {
	if r.PassengerID == userID {
		if r.DriverID == nil {
			return uuid.Nil, false
		}
		return *r.DriverID, true
	}
	if r.DriverID != nil && *r.DriverID == userID {
		return r.PassengerID, true
	}
	return uuid.Nil, false
}
