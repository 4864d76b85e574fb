package monitoring

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Config holds New Relic configuration
type Config struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// NewRelicApp wraps the New Relic application
type NewRelicApp struct {
	*newrelic.Application
	enabled bool
}

// New creates a new New Relic application. With Enabled false or no
// license key it returns a disabled app whose methods are no-ops.
func New(cfg Config) (*NewRelicApp, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return &NewRelicApp{nil, false}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create New Relic application: %w", err)
	}

	return &NewRelicApp{app, true}, nil
}

// IsEnabled returns whether New Relic is enabled
func (nr *NewRelicApp) IsEnabled() bool {
	return nr.enabled
}

// Shutdown gracefully shuts down the New Relic application
func (nr *NewRelicApp) Shutdown(timeout time.Duration) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.Shutdown(timeout)
}

// RecordCustomEvent records a custom event
func (nr *NewRelicApp) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.RecordCustomEvent(eventType, params)
}

// Domain event helpers

// RecordRideCreated records ride creation
func (nr *NewRelicApp) RecordRideCreated(rideID string) {
	nr.RecordCustomEvent("RideCreated", map[string]interface{}{
		"ride_id":   rideID,
		"timestamp": time.Now().Unix(),
	})
}

// RecordRideAccepted records a driver accepting a ride
func (nr *NewRelicApp) RecordRideAccepted(rideID, driverID string) {
	nr.RecordCustomEvent("RideAccepted", map[string]interface{}{
		"ride_id":   rideID,
		"driver_id": driverID,
	})
}

// RecordMessageSent records an in-ride message
func (nr *NewRelicApp) RecordMessageSent(rideID string) {
	nr.RecordCustomEvent("MessageSent", map[string]interface{}{
		"ride_id": rideID,
	})
}
