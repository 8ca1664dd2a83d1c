// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package sim_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	skynet "github.com/mosiahvb/skynet-secure"
	"github.com/mosiahvb/skynet-secure/internal/sim"
)

func TestDroneMovement(t *testing.T) {
	require := require.New(t)

	d := sim.New(nil)

	start := d.Telemetry()

	d.Apply(sim.CommandUp)
	up := d.Telemetry()
	require.Greater(up.Latitude, start.Latitude)
	require.Equal(0.0, up.Heading)

	d.Apply(sim.CommandRight)
	right := d.Telemetry()
	require.Greater(right.Longitude, start.Longitude)
	require.Equal(90.0, right.Heading)
}

func TestDroneBounds(t *testing.T) {
	require := require.New(t)

	d := sim.New(nil)

	// The drone may never leave the grid, no matter how often it is told to.
	for i := 0; i < 100; i++ {
		d.Apply(sim.CommandUp)
	}

	require.Equal(100.0, d.Telemetry().Latitude)
}

func TestDroneBatteryDrain(t *testing.T) {
	require := require.New(t)

	d := sim.New(nil)

	first := d.Telemetry()
	second := d.Telemetry()

	require.Less(second.BatteryLevel, first.BatteryLevel)
	require.Equal(skynet.StatusActive, second.Status)
}

func TestDroneRecharge(t *testing.T) {
	require := require.New(t)

	d := sim.New(nil)

	// Drain the battery completely.
	for d.Telemetry().BatteryLevel > 0 {
	}

	require.Equal(skynet.StatusBatteryDepleted, d.Telemetry().Status)

	// A depleted drone refuses movement...
	before := d.Telemetry()
	d.Apply(sim.CommandUp)
	require.Equal(before.Latitude, d.Telemetry().Latitude)

	// ...but not a recharge.
	d.Apply(sim.CommandRecharge)
	after := d.Telemetry()
	require.Greater(after.BatteryLevel, 99.0)
	require.Equal(skynet.StatusActive, after.Status)
}

func TestDroneUnknownCommand(t *testing.T) {
	require := require.New(t)

	d := sim.New(nil)

	before := d.Telemetry()
	d.Apply("sideways")
	after := d.Telemetry()

	require.Equal(before.Latitude, after.Latitude)
	require.Equal(before.Longitude, after.Longitude)
}
