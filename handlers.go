// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

// Handler is one of the supported handlers declared below.
type Handler any

// DroneConnectedHandler is notified when an initiator connection reaches the
// authenticated state and takes over the drone slot.
type DroneConnectedHandler interface {
	DroneConnected(remote string)
}

// DroneDisconnectedHandler is notified when the current drone connection
// ends.
type DroneDisconnectedHandler interface {
	DroneDisconnected(remote string)
}

// TelemetryHandler is notified for every telemetry record successfully
// decrypted from the drone.
type TelemetryHandler interface {
	TelemetryReceived(t Telemetry)
}
