// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"fmt"
)

type responderState int

const (
	respStateAwaitToken responderState = iota
	respStateTokenVerified
	respStateChallengeSent
	respStateResponseVerified
	respStateAPITokenSent
	respStateAwaitFinalAck
	respStateAuthenticated
	respStateFailed
)

func (s responderState) String() string {
	switch s {
	case respStateAwaitToken:
		return "AwaitToken"
	case respStateTokenVerified:
		return "TokenVerified"
	case respStateChallengeSent:
		return "ChallengeSent"
	case respStateResponseVerified:
		return "ResponseVerified"
	case respStateAPITokenSent:
		return "APITokenSent"
	case respStateAwaitFinalAck:
		return "AwaitFinalAck"
	case respStateAuthenticated:
		return "Authenticated"
	case respStateFailed:
		return "Failed"
	default:
		return "<Unknown>"
	}
}

// responderHandshake drives the accepting side of the mutual handshake. The
// dashboard runs one per inbound connection.
type responderHandshake struct {
	session

	state responderState
}

// run sequences the responder half of the exchange. On return the state is
// either Authenticated or Failed and the session state is discarded.
func (hs *responderHandshake) run() error {
	defer hs.destroy()

	// Step 2: Verify the identity token the initiator opened with.
	token, err := hs.readFrame()
	if err != nil {
		return hs.fail(fmt.Errorf("failed to receive token: %w", err))
	}

	if !hs.auth.Verify(token, IdentityDrone, hs.readTimeout) {
		return hs.reject("invalid token")
	}
	hs.state = respStateTokenVerified

	// Generate a fresh challenge, scoped to this attempt only.
	if hs.challenge, err = NewChallenge(); err != nil {
		return hs.fail(err)
	}

	if err := hs.writeFrame(prefixChallenge + hs.challenge); err != nil {
		return hs.fail(err)
	}
	hs.state = respStateChallengeSent

	// Step 4: Verify proof of possession bound to our challenge.
	response, err := hs.readFrame()
	if err != nil {
		return hs.fail(fmt.Errorf("failed to receive challenge response: %w", err))
	}

	if !hs.auth.VerifyResponse(hs.challenge, response, IdentityDrone) {
		return hs.reject("invalid challenge response")
	}
	hs.state = respStateResponseVerified

	// Authenticate ourselves in return with an API token.
	if err := hs.writeFrame(prefixAPIToken + hs.auth.Issue(IdentityAPI)); err != nil {
		return hs.fail(err)
	}
	hs.state = respStateAPITokenSent

	// Step 6: The next frame must be exactly the final acknowledgement.
	// Unlike the earlier rejection branches this one closes without a reply.
	hs.state = respStateAwaitFinalAck

	final, err := hs.readFrame()
	if err != nil {
		return hs.fail(fmt.Errorf("failed to receive final acknowledgement: %w", err))
	}

	if final != msgAuthSuccess {
		return hs.fail(fmt.Errorf("%w: expected final acknowledgement", ErrUnexpectedMessage))
	}

	// Step 7: Confirm, then hand the connection to the secure channel.
	if err := hs.writeFrame(msgAuthSuccess); err != nil {
		return hs.fail(err)
	}

	if err := hs.enterLive(); err != nil {
		return hs.fail(err)
	}

	hs.state = respStateAuthenticated
	hs.logger.Debug("Handshake completed")

	return nil
}

// reject answers a failed verification step with AUTH_FAILED. The connection
// is closed by the caller; the failure is session-fatal, not process-fatal.
func (hs *responderHandshake) reject(reason string) error {
	hs.state = respStateFailed
	hs.logger.Debug("Rejecting handshake", "reason", reason)

	if err := hs.writeFrame(msgAuthFailed); err != nil {
		hs.logger.Debug("Failed to send rejection", "error", err)
	}

	return fmt.Errorf("%w: %s", ErrAuthFailed, reason)
}

func (hs *responderHandshake) fail(err error) error {
	hs.state = respStateFailed
	return err
}
