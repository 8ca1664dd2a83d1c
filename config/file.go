// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides the TOML file layer on top of the runtime
// configuration structures.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	skynet "github.com/mosiahvb/skynet-secure"
)

// File is the on-disk TOML configuration shared by the dashboard and drone
// commands.
type File struct {
	// Listen is the dashboard's frame listener address.
	Listen string `toml:"listen,omitempty"`

	// HTTPListen is the dashboard's web API address.
	HTTPListen string `toml:"http_listen,omitempty"`

	// Endpoint is the dashboard address the drone connects to.
	Endpoint string `toml:"endpoint,omitempty"`

	// EncryptionKeyFile and AuthSecretFile hold the two independent
	// long-lived secrets. Each is generated on first use and reused across
	// restarts.
	EncryptionKeyFile string `toml:"encryption_key"`
	AuthSecretFile    string `toml:"auth_secret"`

	// UpdateInterval is the telemetry send period in seconds.
	UpdateInterval float64 `toml:"update_interval,omitempty"`

	Verbosity string `toml:"verbosity,omitempty"`
}

func (f *File) Load(r io.Reader) error {
	dec := toml.NewDecoder(r)
	return dec.Decode(f)
}

func (f *File) Dump(w io.Writer) error {
	enc := toml.NewEncoder(w)
	return enc.Encode(f)
}

func (f *File) LoadFile(fn string) error {
	fh, err := os.Open(fn)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if err := f.Load(fh); err != nil {
		return err
	}

	if err := fh.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

func (f *File) DumpFile(fn string) error {
	fh, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if err := f.Dump(fh); err != nil {
		return err
	}

	if err := fh.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

// Check validates the parts of the file every command depends on.
func (f *File) Check() error {
	if f.EncryptionKeyFile == "" || f.AuthSecretFile == "" {
		return errors.New("both encryption_key and auth_secret file paths are required")
	}

	return nil
}

// ToServerConfig loads the key material and builds the dashboard runtime
// configuration. A key that cannot be loaded or generated is fatal.
func (f *File) ToServerConfig() (cfg skynet.Config, err error) {
	if err := f.Check(); err != nil {
		return cfg, err
	}

	if cfg.EncryptionKey, err = skynet.LoadOrGenerateKey(f.EncryptionKeyFile, skynet.KeySize); err != nil {
		return cfg, fmt.Errorf("failed to load encryption key: %w", err)
	}

	if cfg.AuthSecret, err = skynet.LoadOrGenerateKey(f.AuthSecretFile, skynet.AuthSecretSize); err != nil {
		return cfg, fmt.Errorf("failed to load auth secret: %w", err)
	}

	return cfg, nil
}

// ToDroneConfig loads the key material and builds the drone runtime
// configuration.
func (f *File) ToDroneConfig() (cfg skynet.DroneConfig, err error) {
	if err := f.Check(); err != nil {
		return cfg, err
	}

	if f.Endpoint == "" {
		return cfg, errors.New("an endpoint is required")
	}

	cfg.Endpoint = f.Endpoint

	if cfg.EncryptionKey, err = skynet.LoadOrGenerateKey(f.EncryptionKeyFile, skynet.KeySize); err != nil {
		return cfg, fmt.Errorf("failed to load encryption key: %w", err)
	}

	if cfg.AuthSecret, err = skynet.LoadOrGenerateKey(f.AuthSecretFile, skynet.AuthSecretSize); err != nil {
		return cfg, fmt.Errorf("failed to load auth secret: %w", err)
	}

	if f.UpdateInterval > 0 {
		cfg.UpdateInterval = time.Duration(f.UpdateInterval * float64(time.Second))
	}

	return cfg, nil
}
