package ride

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Waypoint is an intermediate stop between a ride's origin and destination
type Waypoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Waypoints is an ordered waypoint sequence stored as a JSON text column
type Waypoints []Waypoint

// Value serializes the sequence for storage. An empty sequence is stored
// as an empty string, matching rows written before any waypoint existed.
func (w Waypoints) Value() (driver.Value, error) {
	if len(w) == 0 {
		return "", nil
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal waypoints: %w", err)
	}
	return string(data), nil
}

// Scan deserializes the stored sequence
func (w *Waypoints) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported waypoints column type %T", value)
	}

	if len(data) == 0 {
		*w = nil
		return nil
	}

	var points []Waypoint
	if err := json.Unmarshal(data, &points); err != nil {
		return fmt.Errorf("unmarshal waypoints: %w", err)
	}
	*w = points
	return nil
}
