// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrIntegrity indicates that a ciphertext failed its authentication
	// check: wrong key or tampered bytes.
	ErrIntegrity = errors.New("ciphertext integrity check failed")

	// ErrFormat indicates that an authenticated plaintext did not parse as
	// the expected structured record.
	ErrFormat = errors.New("payload has invalid format")
)

// Cipher provides authenticated encryption of structured payloads with the
// long-lived payload encryption key. The same instance serves telemetry
// records and command strings; only the payload shape differs.
//
// The key is static across sessions. Frames are not bound to the handshake
// transcript that authenticated the connection carrying them.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a Cipher from a KeySize-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AEAD: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// EncryptTelemetry seals a telemetry record into a self-contained ciphertext
// frame.
func (c *Cipher) EncryptTelemetry(t Telemetry) ([]byte, error) {
	pt, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode telemetry: %w", err)
	}

	return c.seal(pt)
}

// DecryptTelemetry opens a telemetry ciphertext frame. It returns ErrIntegrity
// if the authentication tag does not verify and ErrFormat if the plaintext
// does not parse as a telemetry record.
func (c *Cipher) DecryptTelemetry(ct []byte) (Telemetry, error) {
	var t Telemetry

	pt, err := c.open(ct)
	if err != nil {
		return t, err
	}

	if err := json.Unmarshal(pt, &t); err != nil {
		return t, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return t, nil
}

// EncryptCommand seals a command string into a ciphertext frame.
func (c *Cipher) EncryptCommand(cmd string) ([]byte, error) {
	return c.seal([]byte(cmd))
}

// DecryptCommand opens a command ciphertext frame.
func (c *Cipher) DecryptCommand(ct []byte) (string, error) {
	pt, err := c.open(ct)
	if err != nil {
		return "", err
	}

	return string(pt), nil
}

func (c *Cipher) seal(pt []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize, nonceSize+len(pt)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return c.aead.Seal(nonce, nonce, pt, nil), nil
}

func (c *Cipher) open(ct []byte) ([]byte, error) {
	if len(ct) < nonceSize+c.aead.Overhead() {
		return nil, ErrIntegrity
	}

	pt, err := c.aead.Open(nil, ct[:nonceSize], ct[nonceSize:], nil)
	if err != nil {
		return nil, ErrIntegrity
	}

	return pt, nil
}
