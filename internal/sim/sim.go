// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

// Package sim provides a simulated drone for driving the secure channel
// without real hardware.
package sim

import (
	"log/slog"
	"sync"
	"time"

	skynet "github.com/mosiahvb/skynet-secure"
)

// Control commands understood by the simulator. The transport does not
// validate set membership; unknown commands are ignored here.
const (
	CommandUp       = "up"
	CommandDown     = "down"
	CommandLeft     = "left"
	CommandRight    = "right"
	CommandRecharge = "recharge"
)

const (
	initialLatitude  = 50.0
	initialLongitude = 50.0
	initialAltitude  = 10.0
	initialBattery   = 100.0

	moveSpeed        = 2.0  // Position units per command
	batteryDrainRate = 0.05 // Percent per sample

	minCoordinate = 0.0
	maxCoordinate = 100.0
)

// Drone simulates a drone on a bounded grid with a draining battery. It
// implements skynet.TelemetrySource and handles skynet commands, so it plugs
// directly into a skynet.Drone.
type Drone struct {
	mu sync.Mutex

	latitude  float64
	longitude float64
	altitude  float64
	speed     float64
	heading   float64
	battery   float64

	logger *slog.Logger
}

// New creates a fully charged drone at the center of the grid.
func New(logger *slog.Logger) *Drone {
	if logger == nil {
		logger = slog.Default()
	}

	return &Drone{
		latitude:  initialLatitude,
		longitude: initialLongitude,
		altitude:  initialAltitude,
		battery:   initialBattery,
		logger:    logger,
	}
}

// Telemetry samples the current state. Each sample drains the battery a
// little; a drained drone reports itself as depleted.
func (d *Drone) Telemetry() skynet.Telemetry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.battery > 0 {
		d.battery = max(0, d.battery-batteryDrainRate)
	}

	status := skynet.StatusActive
	if d.battery <= 0 {
		status = skynet.StatusBatteryDepleted
	}

	return skynet.Telemetry{
		Timestamp:    float64(time.Now().UnixNano()) / float64(time.Second),
		Latitude:     d.latitude,
		Longitude:    d.longitude,
		Altitude:     d.altitude,
		Speed:        d.speed,
		Heading:      d.heading,
		BatteryLevel: d.battery,
		Status:       status,
	}
}

// Apply executes one control command. A depleted drone refuses everything
// except a recharge.
func (d *Drone) Apply(cmd string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.battery <= 0 && cmd != CommandRecharge {
		d.logger.Warn("Battery depleted, ignoring command", "command", cmd)
		return
	}

	switch cmd {
	case CommandUp:
		d.latitude += moveSpeed
		d.heading = 0.0
		d.speed = moveSpeed * 10

	case CommandDown:
		d.latitude -= moveSpeed
		d.heading = 180.0
		d.speed = moveSpeed * 10

	case CommandLeft:
		d.longitude -= moveSpeed
		d.heading = 270.0
		d.speed = moveSpeed * 10

	case CommandRight:
		d.longitude += moveSpeed
		d.heading = 90.0
		d.speed = moveSpeed * 10

	case CommandRecharge:
		d.battery = initialBattery
		d.speed = 0.0

	default:
		d.logger.Warn("Unknown command", "command", cmd)
		return
	}

	d.latitude = min(maxCoordinate, max(minCoordinate, d.latitude))
	d.longitude = min(maxCoordinate, max(minCoordinate, d.longitude))

	d.logger.Debug("Applied command",
		"command", cmd,
		"latitude", d.latitude,
		"longitude", d.longitude,
		"battery", d.battery)
}
