// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"encoding/hex"
	"fmt"
	"strings"
)

type initiatorState int

const (
	initStateSendToken initiatorState = iota
	initStateAwaitChallenge
	initStateResponseSent
	initStateAwaitAPIToken
	initStateAPITokenVerified
	initStateAwaitFinal
	initStateAuthenticated
	initStateFailed
)

func (s initiatorState) String() string {
	switch s {
	case initStateSendToken:
		return "SendToken"
	case initStateAwaitChallenge:
		return "AwaitChallenge"
	case initStateResponseSent:
		return "ResponseSent"
	case initStateAwaitAPIToken:
		return "AwaitAPIToken"
	case initStateAPITokenVerified:
		return "APITokenVerified"
	case initStateAwaitFinal:
		return "AwaitFinal"
	case initStateAuthenticated:
		return "Authenticated"
	case initStateFailed:
		return "Failed"
	default:
		return "<Unknown>"
	}
}

// initiatorHandshake drives the connecting side of the mutual handshake. The
// drone runs one per connection attempt; a failed attempt is torn down and
// restarted from step 1 after a backoff, never resumed.
type initiatorHandshake struct {
	session

	state initiatorState
}

// run sequences the initiator half of the exchange.
func (hs *initiatorHandshake) run() error {
	defer hs.destroy()

	// Step 1: Claim our identity with a fresh token.
	if err := hs.writeFrame(hs.auth.Issue(IdentityDrone)); err != nil {
		return hs.fail(err)
	}
	hs.state = initStateAwaitChallenge

	// Step 3: Prove possession of the secret for the challenge we were sent.
	frame, err := hs.readFrame()
	if err != nil {
		return hs.fail(fmt.Errorf("failed to receive challenge: %w", err))
	}

	challenge, ok := strings.CutPrefix(frame, prefixChallenge)
	if !ok {
		return hs.unexpected(frame)
	}

	if len(challenge) != hex.EncodedLen(challengeSize) {
		return hs.fail(fmt.Errorf("%w: malformed challenge", ErrUnexpectedMessage))
	}

	hs.challenge = challenge

	response, err := hs.auth.Respond(hs.challenge, IdentityDrone)
	if err != nil {
		return hs.fail(err)
	}

	if err := hs.writeFrame(response); err != nil {
		return hs.fail(err)
	}
	hs.state = initStateResponseSent

	// Step 5: Verify the responder's API token; mutual authentication.
	hs.state = initStateAwaitAPIToken

	frame, err = hs.readFrame()
	if err != nil {
		return hs.fail(fmt.Errorf("failed to receive API token: %w", err))
	}

	apiToken, ok := strings.CutPrefix(frame, prefixAPIToken)
	if !ok {
		return hs.unexpected(frame)
	}

	if !hs.auth.Verify(apiToken, IdentityAPI, hs.readTimeout) {
		hs.state = initStateFailed

		if err := hs.writeFrame(msgAuthFailed); err != nil {
			hs.logger.Debug("Failed to send rejection", "error", err)
		}

		return fmt.Errorf("%w: invalid API token", ErrAuthFailed)
	}
	hs.state = initStateAPITokenVerified

	if err := hs.writeFrame(msgAuthSuccess); err != nil {
		return hs.fail(err)
	}
	hs.state = initStateAwaitFinal

	// Step 7: Both sides agree; await the responder's confirmation.
	frame, err = hs.readFrame()
	if err != nil {
		return hs.fail(fmt.Errorf("failed to receive confirmation: %w", err))
	}

	if frame != msgAuthSuccess {
		return hs.unexpected(frame)
	}

	if err := hs.enterLive(); err != nil {
		return hs.fail(err)
	}

	hs.state = initStateAuthenticated
	hs.logger.Debug("Handshake completed")

	return nil
}

// unexpected classifies a mismatched frame: an explicit AUTH_FAILED from the
// responder is an authentication failure, anything else a protocol violation.
func (hs *initiatorHandshake) unexpected(frame string) error {
	state := hs.state
	hs.state = initStateFailed

	if frame == msgAuthFailed {
		return fmt.Errorf("%w: rejected by responder", ErrAuthFailed)
	}

	return fmt.Errorf("%w in state %s", ErrUnexpectedMessage, state)
}

func (hs *initiatorHandshake) fail(err error) error {
	hs.state = initStateFailed
	return err
}
