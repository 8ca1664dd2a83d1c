// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"
)

// ErrNotConnected is returned by SendCommand when no authenticated drone
// connection currently exists.
var ErrNotConnected = errors.New("no drone connected")

// Config configures a dashboard server.
type Config struct {
	// EncryptionKey is the KeySize-byte payload encryption key.
	EncryptionKey []byte

	// AuthSecret is the shared authentication secret.
	AuthSecret []byte

	// TokenValidity overrides the token freshness window and the handshake
	// read deadline. Defaults to TokenValidity.
	TokenValidity time.Duration

	Handlers []Handler

	Logger *slog.Logger
}

// Server is the responder side: it accepts connections, runs the responder
// handshake on each, and once a connection is authenticated treats it as the
// single current drone, fanning its telemetry out to subscribers and
// forwarding commands back to it.
type Server struct {
	cipher *Cipher
	auth   *TokenAuthority

	tokenValidity time.Duration
	handlers      []Handler

	listener  net.Listener
	closeOnce sync.Once

	// The authenticated drone connection is an exclusive, swappable slot: a
	// newly authenticated connection replaces and closes the previous one.
	droneMu sync.Mutex
	drone   Conn

	subscribers *subscriberSet

	historyMu sync.Mutex
	history   []Telemetry

	logger *slog.Logger
}

// NewServer creates a dashboard server from the two long-lived secrets.
func NewServer(cfg Config) (*Server, error) {
	if len(cfg.AuthSecret) == 0 {
		return nil, errors.New("missing authentication secret")
	}

	cipher, err := NewCipher(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cipher:        cipher,
		auth:          NewTokenAuthority(cfg.AuthSecret),
		tokenValidity: cfg.TokenValidity,
		handlers:      cfg.Handlers,
		subscribers:   newSubscriberSet(),
		logger:        cfg.Logger,
	}

	if s.tokenValidity == 0 {
		s.tokenValidity = TokenValidity
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

// Serve accepts and handles connections on l until l is closed.
func (s *Server) Serve(l net.Listener) error {
	s.listener = l

	for {
		nc, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return fmt.Errorf("failed to accept: %w", err)
		}

		go s.handleConn(nc)
	}
}

// Close shuts the listener and the current drone connection down.
func (s *Server) Close() error {
	var err error

	s.closeOnce.Do(func() {
		if s.listener != nil {
			err = s.listener.Close()
		}

		s.droneMu.Lock()
		drone := s.drone
		s.drone = nil
		s.droneMu.Unlock()

		if drone != nil {
			drone.Close()
		}
	})

	return err
}

func (s *Server) handleConn(nc net.Conn) {
	conn := NewStreamConn(nc)
	logger := s.logger.With("remote", conn.RemoteAddr())

	hs := &responderHandshake{
		session: session{
			auth:        s.auth,
			conn:        conn,
			readTimeout: s.tokenValidity,
			logger:      logger,
		},
	}

	if err := hs.run(); err != nil {
		logger.Debug("Handshake failed", "error", err, "state", hs.state)
		conn.Close()

		return
	}

	s.adoptDrone(conn)
	logger.Info("Drone authenticated")

	for _, h := range s.handlers {
		if h, ok := h.(DroneConnectedHandler); ok {
			h.DroneConnected(conn.RemoteAddr())
		}
	}

	s.telemetryLoop(conn, logger)

	s.releaseDrone(conn)
	conn.Close()

	for _, h := range s.handlers {
		if h, ok := h.(DroneDisconnectedHandler); ok {
			h.DroneDisconnected(conn.RemoteAddr())
		}
	}
}

// telemetryLoop reads telemetry ciphertext frames until the connection ends.
// A frame that fails decryption or parsing is logged and dropped; the channel
// itself stays open.
func (s *Server) telemetryLoop(conn Conn, logger *slog.Logger) {
	for {
		frame, err := conn.ReadFrame()
		if err != nil {
			logger.Debug("Drone connection closed", "error", err)
			return
		}

		t, err := s.cipher.DecryptTelemetry(frame)
		if err != nil {
			logger.Warn("Dropping invalid telemetry frame", "error", err)
			continue
		}

		s.record(t)
		s.dispatch(t)
	}
}

// dispatch fans one record out to a snapshot of the subscriber set. Delivery
// is best-effort per subscriber; a failed delivery evicts that subscriber
// without affecting the others.
func (s *Server) dispatch(t Telemetry) {
	for _, sub := range s.subscribers.snapshot() {
		if !sub.deliver(t) {
			s.subscribers.remove(sub.id)
			sub.close()
			s.logger.Debug("Evicted subscriber", "id", sub.id)
		}
	}

	for _, h := range s.handlers {
		if h, ok := h.(TelemetryHandler); ok {
			h.TelemetryReceived(t)
		}
	}
}

func (s *Server) record(t Telemetry) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history = append(s.history, t)
	if len(s.history) > HistorySize {
		s.history = s.history[len(s.history)-HistorySize:]
	}
}

// History returns the most recent telemetry records, oldest first.
func (s *Server) History() []Telemetry {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	history := make([]Telemetry, len(s.history))
	copy(history, s.history)

	return history
}

// Subscribe registers a new telemetry subscriber.
func (s *Server) Subscribe() *Subscriber {
	return s.subscribers.add()
}

// Subscribers returns the current number of subscribers.
func (s *Server) Subscribers() int {
	return s.subscribers.len()
}

// DroneConnected reports whether an authenticated drone connection exists.
func (s *Server) DroneConnected() bool {
	s.droneMu.Lock()
	defer s.droneMu.Unlock()

	return s.drone != nil
}

// SendCommand encrypts a command and forwards it to the current drone
// connection. Commands issued while no drone is connected fail with
// ErrNotConnected instead of being dropped silently.
func (s *Server) SendCommand(cmd string) error {
	s.droneMu.Lock()
	drone := s.drone
	s.droneMu.Unlock()

	if drone == nil {
		return ErrNotConnected
	}

	frame, err := s.cipher.EncryptCommand(cmd)
	if err != nil {
		return err
	}

	if err := drone.WriteFrame(frame); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}

	return nil
}

// adoptDrone installs conn as the current drone connection, replacing and
// closing any previous one. Commands already sent to the previous connection
// are not redirected.
func (s *Server) adoptDrone(conn Conn) {
	s.droneMu.Lock()
	prev := s.drone
	s.drone = conn
	s.droneMu.Unlock()

	if prev != nil {
		s.logger.Info("Replacing drone connection", "previous", prev.RemoteAddr())
		prev.Close()
	}
}

// releaseDrone clears the slot if conn still owns it. A connection that was
// already replaced must not clear its successor.
func (s *Server) releaseDrone(conn Conn) {
	s.droneMu.Lock()
	defer s.droneMu.Unlock()

	if s.drone == conn {
		s.drone = nil
	}
}
