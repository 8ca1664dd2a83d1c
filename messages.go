// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

// Handshake wire literals. All of them are ASCII and case-sensitive; anything
// that does not match the exact expected frame moves the state machine to its
// failed state.
const (
	msgAuthFailed  = "AUTH_FAILED"
	msgAuthSuccess = "AUTH_SUCCESS"

	prefixChallenge = "CHALLENGE:"
	prefixAPIToken  = "API_TOKEN:"
)

// Telemetry status values.
const (
	StatusActive          = "active"
	StatusBatteryDepleted = "battery_depleted"
)

// Telemetry is one sample of the drone's state. It is the structured payload
// carried inside telemetry ciphertext frames.
type Telemetry struct {
	Timestamp    float64 `json:"timestamp"`     // Epoch seconds
	Latitude     float64 `json:"latitude"`      // Degrees
	Longitude    float64 `json:"longitude"`     // Degrees
	Altitude     float64 `json:"altitude"`      // Meters
	Speed        float64 `json:"speed"`         // Meters per second
	Heading      float64 `json:"heading"`       // Degrees, [0, 360)
	BatteryLevel float64 `json:"battery_level"` // Percent, [0, 100]
	Status       string  `json:"status"`
}
