package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatDistance tests human-readable distance rendering
func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name     string
		meters   float64
		expected string
	}{
		{"Short", 500, "500 m"},
		{"JustUnderKm", 999, "999 m"},
		{"ExactKm", 1000, "1.0 km"},
		{"Kilometers", 1234, "1.2 km"},
		{"Long", 15678, "15.7 km"},
		{"Zero", 0, "0 m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDistance(tt.meters))
		})
	}
}

// TestFormatDuration tests human-readable duration rendering
func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"Minutes", 2700, "45min"},
		{"JustUnderHour", 3599, "59min"},
		{"ExactHour", 3600, "1h 0min"},
		{"HourAndHalf", 5400, "1h 30min"},
		{"Long", 7890, "2h 11min"},
		{"Zero", 0, "0min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.seconds))
		})
	}
}
