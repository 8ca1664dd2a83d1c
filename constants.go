// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the length of the payload encryption key.
	KeySize = chacha20poly1305.KeySize

	// AuthSecretSize is the length of the shared authentication secret.
	AuthSecretSize = 32

	challengeSize = 32
	nonceSize     = chacha20poly1305.NonceSizeX

	// TokenValidity bounds the age of an authentication token. It doubles as
	// the per-read deadline during the handshake so a half-open peer cannot
	// hold a connection open for longer than a token would have been accepted.
	TokenValidity = 30 * time.Second

	// ReconnectDelay is the fixed backoff between drone connection attempts.
	ReconnectDelay = 3 * time.Second

	// DefaultUpdateInterval is the default telemetry send period.
	DefaultUpdateInterval = 1 * time.Second

	// HistorySize is the number of telemetry records the dashboard retains.
	HistorySize = 50

	maxFrameSize     = 1 << 20
	subscriberBuffer = 16
)

const (
	// IdentityDrone is the identity the initiator authenticates as.
	IdentityDrone = "drone"

	// IdentityAPI is the identity the responder's API token is issued for.
	IdentityAPI = "api"
)
