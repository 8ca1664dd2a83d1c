// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// TelemetrySource produces the next telemetry record to transmit.
type TelemetrySource interface {
	Telemetry() Telemetry
}

// CommandFunc is invoked for every command successfully decrypted from the
// dashboard.
type CommandFunc func(cmd string)

// DroneConfig configures an initiator client.
type DroneConfig struct {
	// Endpoint is the dashboard's frame listener address.
	Endpoint string

	// EncryptionKey is the KeySize-byte payload encryption key.
	EncryptionKey []byte

	// AuthSecret is the shared authentication secret.
	AuthSecret []byte

	// Source supplies telemetry records. Required.
	Source TelemetrySource

	// OnCommand handles decrypted commands. Optional.
	OnCommand CommandFunc

	// UpdateInterval is the telemetry send period. Defaults to
	// DefaultUpdateInterval.
	UpdateInterval time.Duration

	// ReconnectDelay is the fixed backoff between connection attempts.
	// Defaults to ReconnectDelay.
	ReconnectDelay time.Duration

	// TokenValidity overrides the token freshness window and the handshake
	// read deadline. Defaults to TokenValidity.
	TokenValidity time.Duration

	Logger *slog.Logger
}

// Drone is the initiator side: it connects to the dashboard, performs the
// mutual handshake and then streams encrypted telemetry while accepting
// encrypted commands. Any failure tears the connection down; Run restarts
// the full handshake from step 1 after a fixed backoff, with all prior
// session state discarded.
type Drone struct {
	cipher *Cipher
	auth   *TokenAuthority

	endpoint       string
	source         TelemetrySource
	onCommand      CommandFunc
	updateInterval time.Duration
	reconnectDelay time.Duration
	tokenValidity  time.Duration

	logger *slog.Logger
}

// NewDrone creates an initiator client from the two long-lived secrets.
func NewDrone(cfg DroneConfig) (*Drone, error) {
	if len(cfg.AuthSecret) == 0 {
		return nil, errors.New("missing authentication secret")
	}

	if cfg.Source == nil {
		return nil, errors.New("missing telemetry source")
	}

	cipher, err := NewCipher(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}

	d := &Drone{
		cipher:         cipher,
		auth:           NewTokenAuthority(cfg.AuthSecret),
		endpoint:       cfg.Endpoint,
		source:         cfg.Source,
		onCommand:      cfg.OnCommand,
		updateInterval: cfg.UpdateInterval,
		reconnectDelay: cfg.ReconnectDelay,
		tokenValidity:  cfg.TokenValidity,
		logger:         cfg.Logger,
	}

	if d.updateInterval == 0 {
		d.updateInterval = DefaultUpdateInterval
	}

	if d.reconnectDelay == 0 {
		d.reconnectDelay = ReconnectDelay
	}

	if d.tokenValidity == 0 {
		d.tokenValidity = TokenValidity
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}

	return d, nil
}

// Run connects, authenticates and exchanges data until ctx is cancelled,
// reconnecting from scratch after every failure.
func (d *Drone) Run(ctx context.Context) error {
	for {
		if err := d.runOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Warn("Connection failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.reconnectDelay):
		}
	}
}

func (d *Drone) runOnce(ctx context.Context) error {
	var dialer net.Dialer

	nc, err := dialer.DialContext(ctx, "tcp", d.endpoint)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	conn := NewStreamConn(nc)
	defer conn.Close()

	hs := &initiatorHandshake{
		session: session{
			auth:        d.auth,
			conn:        conn,
			readTimeout: d.tokenValidity,
			logger:      d.logger,
		},
	}

	if err := hs.run(); err != nil {
		return fmt.Errorf("handshake failed in state %s: %w", hs.state, err)
	}

	d.logger.Info("Authenticated to dashboard", "endpoint", d.endpoint)

	return d.exchangeLoop(ctx, conn)
}

// exchangeLoop streams telemetry on a fixed interval and applies incoming
// commands. A command triggers an immediate telemetry update so the
// dashboard sees its effect without waiting for the next tick.
func (d *Drone) exchangeLoop(ctx context.Context, conn Conn) error {
	cmds := make(chan string)
	errs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go d.commandLoop(conn, cmds, errs, done)

	if err := d.sendTelemetry(conn); err != nil {
		return err
	}

	ticker := time.NewTicker(d.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-errs:
			return err

		case cmd := <-cmds:
			if d.onCommand != nil {
				d.onCommand(cmd)
			}

			if err := d.sendTelemetry(conn); err != nil {
				return err
			}

		case <-ticker.C:
			if err := d.sendTelemetry(conn); err != nil {
				return err
			}
		}
	}
}

// commandLoop reads command ciphertext frames until the connection ends. An
// undecryptable command is logged and dropped; the channel stays open.
func (d *Drone) commandLoop(conn Conn, cmds chan<- string, errs chan<- error, done <-chan struct{}) {
	for {
		frame, err := conn.ReadFrame()
		if err != nil {
			errs <- err
			return
		}

		cmd, err := d.cipher.DecryptCommand(frame)
		if err != nil {
			d.logger.Warn("Dropping invalid command frame", "error", err)
			continue
		}

		select {
		case cmds <- cmd:
		case <-done:
			return
		}
	}
}

func (d *Drone) sendTelemetry(conn Conn) error {
	frame, err := d.cipher.EncryptTelemetry(d.source.Telemetry())
	if err != nil {
		return err
	}

	if err := conn.WriteFrame(frame); err != nil {
		return fmt.Errorf("failed to send telemetry: %w", err)
	}

	return nil
}
