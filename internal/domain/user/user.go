package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Type discriminates the two account kinds sharing the users table.
type Type string

const (
	TypePassenger Type = "passenger"
	TypeDriver    Type = "driver"
)

// User represents a passenger or driver account
type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username          string     `gorm:"uniqueIndex;not null" json:"username"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	UserType          Type       `gorm:"not null" json:"user_type"`
	IsAvailable       bool       `json:"is_available"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	LocationUpdatedAt *time.Time `json:"location_updated_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// BeforeCreate assigns an ID when none was set by the caller
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsValid validates the user type
func (t Type) IsValid() bool {
	switch t {
	case TypePassenger, TypeDriver:
		return true
	}
	return false
}

// HasLocation reports whether a location was ever recorded
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

// SetLocation updates the user's last known location
func (u *User) SetLocation(lat, lng float64, at time.Time) {
	u.Latitude = &lat
	u.Longitude = &lng
	u.LocationUpdatedAt = &at
}
