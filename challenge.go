// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewChallenge returns a fresh hex-encoded random nonce. A challenge is
// scoped to a single handshake attempt and must never be reused.
func NewChallenge() (string, error) {
	nonce := make([]byte, challengeSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate challenge: %w", err)
	}

	return hex.EncodeToString(nonce), nil
}

// Respond proves possession of the authentication secret for one specific
// (challenge, identity) pair: HMAC-SHA256(secret, challengeBytes||identity),
// hex-encoded. A response computed for one identity or nonce cannot be
// replayed for another.
func (a *TokenAuthority) Respond(challenge, identity string) (string, error) {
	nonce, err := hex.DecodeString(challenge)
	if err != nil {
		return "", fmt.Errorf("malformed challenge: %w", err)
	}

	return hex.EncodeToString(a.sign(append(nonce, identity...))), nil
}

// VerifyResponse recomputes the expected response and compares it in
// constant time. Malformed input verifies false.
func (a *TokenAuthority) VerifyResponse(challenge, response, identity string) bool {
	nonce, err := hex.DecodeString(challenge)
	if err != nil {
		return false
	}

	got, err := hex.DecodeString(response)
	if err != nil {
		return false
	}

	return hmac.Equal(got, a.sign(append(nonce, identity...)))
}
