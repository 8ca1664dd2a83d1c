// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// TokenAuthority issues and verifies short-lived identity claims and
// challenge responses, all keyed by the shared authentication secret. It is
// independent of the payload encryption key.
type TokenAuthority struct {
	secret []byte
	now    func() time.Time
}

// NewTokenAuthority creates a TokenAuthority from the shared secret.
func NewTokenAuthority(secret []byte) *TokenAuthority {
	return &TokenAuthority{
		secret: secret,
		now:    time.Now,
	}
}

// Issue creates a fresh token claiming identity at the current time.
//
// Wire encoding: hex(identity ":" unixSeconds) "|" hex(signature), with the
// signature being HMAC-SHA256 over the unencoded message. The delimiter
// cannot appear inside hex output.
func (a *TokenAuthority) Issue(identity string) string {
	msg := identity + ":" + strconv.FormatInt(a.now().Unix(), 10)
	sig := a.sign([]byte(msg))

	return hex.EncodeToString([]byte(msg)) + "|" + hex.EncodeToString(sig)
}

// Verify checks a token against an expected identity and maximum age. It
// never fails with an error; malformed encoding, a signature mismatch, an
// identity mismatch and a stale or future timestamp all simply yield false.
//
// The timestamp bound is the only replay defense: a captured token remains
// usable for its remaining validity window.
func (a *TokenAuthority) Verify(token, identity string, maxAge time.Duration) bool {
	msgHex, sigHex, ok := strings.Cut(token, "|")
	if !ok {
		return false
	}

	msg, err := hex.DecodeString(msgHex)
	if err != nil {
		return false
	}

	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return false
	}

	if !hmac.Equal(sig, a.sign(msg)) {
		return false
	}

	sep := strings.LastIndexByte(string(msg), ':')
	if sep < 0 {
		return false
	}

	if string(msg[:sep]) != identity {
		return false
	}

	issuedAt, err := strconv.ParseInt(string(msg[sep+1:]), 10, 64)
	if err != nil {
		return false
	}

	age := a.now().Unix() - issuedAt
	if age < 0 {
		age = -age
	}

	return age <= int64(maxAge.Seconds())
}

func (a *TokenAuthority) sign(msg []byte) []byte {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write(msg)

	return mac.Sum(nil)
}
