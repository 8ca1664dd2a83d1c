// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"errors"
	"log/slog"
	"time"
)

var (
	// ErrAuthFailed indicates that a handshake step failed verification.
	// It is terminal for the connection attempt, never for the process.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrUnexpectedMessage indicates a frame other than the exact expected
	// next one. The state machine never interprets frames leniently.
	ErrUnexpectedMessage = errors.New("received unexpected message")
)

// session is the per-connection handshake state shared by both roles. It
// lives for exactly one attempt: every terminal transition, success or
// failure, discards it together with the challenge it holds.
type session struct {
	auth *TokenAuthority
	conn Conn

	challenge string

	readTimeout time.Duration

	logger *slog.Logger
}

// readFrame reads the next handshake frame as text, bounded by the session
// read deadline.
func (s *session) readFrame() (string, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
		return "", err
	}

	frame, err := s.conn.ReadFrame()
	if err != nil {
		return "", err
	}

	return string(frame), nil
}

func (s *session) writeFrame(frame string) error {
	return s.conn.WriteFrame([]byte(frame))
}

// enterLive clears the handshake read deadline before the connection is
// handed to the secure channel.
func (s *session) enterLive() error {
	return s.conn.SetReadDeadline(time.Time{})
}

func (s *session) destroy() {
	s.challenge = ""
}
